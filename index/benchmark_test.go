package index

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gcbaptista/go-fuzzy-search/config"
	fixtures "github.com/gcbaptista/go-fuzzy-search/internal/testing"
)

// BenchmarkBuild benchmarks index construction in both modes
func BenchmarkBuild(b *testing.B) {
	sizes := []int{100, 1000, 5000}

	for _, mode := range []string{config.IndexModeDirect, config.IndexModeInverted} {
		for _, size := range sizes {
			b.Run(fmt.Sprintf("%s/records_%d", mode, size), func(b *testing.B) {
				records := fixtures.GeneratedRecords(size)

				b.ResetTimer()
				b.ReportAllocs()

				for i := 0; i < b.N; i++ {
					start := time.Now()
					if _, err := Build(records, mode); err != nil {
						b.Fatalf("Failed to build index: %v", err)
					}
					duration := time.Since(start)

					b.ReportMetric(float64(size)/duration.Seconds(), "records/sec")
				}
			})
		}
	}
}

// BenchmarkCandidates benchmarks candidate collection with and without typos
func BenchmarkCandidates(b *testing.B) {
	idx, err := Build(fixtures.GeneratedRecords(5000), config.IndexModeInverted)
	if err != nil {
		b.Fatalf("Failed to build index: %v", err)
	}

	for _, budget := range []int{0, 1, 2} {
		b.Run(fmt.Sprintf("budget_%d", budget), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := idx.Candidates(context.Background(), "gamma", budget); err != nil {
					b.Fatalf("Failed to collect candidates: %v", err)
				}
			}
		})
	}
}
