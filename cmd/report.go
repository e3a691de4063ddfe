package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/store"
	"github.com/jsphweid/chordal/util"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarises the archived runs",
	Long:  `Summarises the archived runs: sizes, span lengths and how often each chord quality was chosen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		r, err := buildReport(s)
		if err != nil {
			return err
		}
		r.print(cmd.OutOrStdout())
		return nil
	},
}

type runsReport struct {
	numRuns        int
	numSegments    uint64
	numSpans       uint64
	segmentsPerRun float64
	spanLengths    []float64
	qualities      map[model.Quality]int
	ties           int
}

func buildReport(s *store.Store) (runsReport, error) {
	report := runsReport{qualities: make(map[model.Quality]int)}

	index, err := s.Index()
	if err != nil {
		return report, err
	}
	report.numRuns = len(index)

	segments := make([]int, 0, len(index))
	spans := make([]int, 0, len(index))
	for _, overview := range index {
		segments = append(segments, overview.Segments)
		spans = append(spans, overview.Spans)

		run, err := s.Load(overview.ID)
		if err != nil {
			return report, fmt.Errorf("loading run %s: %w", overview.ID, err)
		}
		for _, span := range run.Analysis.Spans {
			report.spanLengths = append(report.spanLengths, float64(span.End-span.Start))
			if len(span.Labels) > 1 {
				report.ties++
			}
			if len(span.Labels) > 0 {
				report.qualities[span.Labels[0].Quality]++
			}
		}
	}

	report.numSegments = util.Sum(segments)
	report.numSpans = util.Sum(spans)
	if report.numRuns > 0 {
		report.segmentsPerRun = float64(report.numSegments) / float64(report.numRuns)
	}
	return report, nil
}

func (r runsReport) print(w io.Writer) {
	fmt.Fprintf(w, "runs: %v\n", r.numRuns)
	fmt.Fprintf(w, "segments: %v (%.1f per run)\n", r.numSegments, r.segmentsPerRun)
	fmt.Fprintf(w, "spans: %v, %v with tied labels\n", r.numSpans, r.ties)
	if len(r.spanLengths) > 0 {
		mean, std := stat.MeanStdDev(r.spanLengths, nil)
		fmt.Fprintf(w, "span length: mean %.2f, std dev %.2f segments\n", mean, std)
	}
	for _, q := range util.GetKeys(r.qualities) {
		fmt.Fprintf(w, "  %-5s %v\n", q, r.qualities[q])
	}
}
