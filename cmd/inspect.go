package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	inspectFormat  string
	inspectExcerpt int
	inspectOut     string
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", formatText, "text, json or yaml")
	inspectCmd.Flags().IntVarP(&inspectExcerpt, "excerpt", "e", -1, "write the span with this index as a MIDI excerpt")
	inspectCmd.Flags().StringVarP(&inspectOut, "out", "o", "excerpt.mid", "excerpt file")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <run id>",
	Short: "Inspects an archived run",
	Long:  `Inspects an archived run, optionally cutting one of its spans out of the score.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(inspectFormat); err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		run, err := s.Load(args[0])
		if err != nil {
			return err
		}

		if inspectExcerpt >= 0 {
			return writeExcerpt(run.File, run.Segments, run.Analysis.Spans, inspectExcerpt, inspectOut)
		}

		out := cmd.OutOrStdout()
		if inspectFormat != formatText {
			return encode(out, inspectFormat, run)
		}
		fmt.Fprintf(out, "id: %v\nfile: %v\ncreated: %v\nsegments: %v\n", run.ID, run.File, run.CreatedAt, len(run.Segments))
		printSpans(out, run.Segments, run.Analysis)
		return nil
	},
}
