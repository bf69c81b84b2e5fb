// fuzzysearch serves fuzzy queries over a record dataset, either over HTTP
// (serve) or once from the command line (query).
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
