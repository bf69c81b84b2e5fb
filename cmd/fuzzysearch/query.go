package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-fuzzy-search/model"
)

type queryOptions struct {
	json bool
}

func newQueryCmd(global *globalOptions) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Run one query against the dataset and print the outcome",
		Long: `Run one query against the dataset and print the outcome.

Examples:
  fuzzysearch query -d records.yaml aple          # Print matching records
  fuzzysearch query -d records.yaml --json aple   # Output as JSON`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(global, nil)
			if err != nil {
				return err
			}
			defer func() { _ = eng.Close() }()

			outcome, err := eng.Lookup(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if opts.json {
				return writeOutcomeJSON(cmd.OutOrStdout(), outcome)
			}
			writeOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "output the outcome as JSON")
	return cmd
}

func writeOutcomeJSON(w io.Writer, outcome *model.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outcome)
}

func writeOutcome(w io.Writer, outcome *model.Outcome) {
	switch {
	case outcome.HasMatches():
		for _, r := range outcome.Matches {
			writeRecord(w, r)
		}
	case outcome.IsSuggestion():
		_, _ = fmt.Fprintln(w, outcome.Suggestion.Message)
		for _, r := range outcome.Suggestion.Suggestions {
			writeRecord(w, r)
		}
	}
}

func writeRecord(w io.Writer, r model.Record) {
	if len(r.Tags) == 0 {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", r.ID, r.Name)
		return
	}
	_, _ = fmt.Fprintf(w, "%s\t%s\t[%s]\n", r.ID, r.Name, strings.Join(r.Tags, ", "))
}
