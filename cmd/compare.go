package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/chordal/corpus"
	"github.com/jsphweid/chordal/db"
	"github.com/jsphweid/chordal/logging"
	"github.com/spf13/cobra"
)

var (
	compareFormat string
	compareDynamo bool
)

func init() {
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", formatText, "text, json or yaml")
	compareCmd.Flags().BoolVar(&compareDynamo, "dynamo", false, "record results in DynamoDB")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare <truth file or directory> [guess directory]",
	Short: "Scores analyses against hand-labelled scores",
	Long: `Scores analyses against hand-labelled scores. Ground truth is read from
the lyrics of each truth file, the guess from <name>_analysis.mid in the
guess directory (the out dir by default).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(compareFormat); err != nil {
			return err
		}
		guessDir := cfg.OutDir
		if len(args) == 2 {
			guessDir = args[1]
		}

		truthFiles := []string{args[0]}
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			if truthFiles, err = corpus.Gather(args[0], 0); err != nil {
				return err
			}
		}

		report, err := corpus.CompareAll(cmd.Context(), truthFiles, guessDir, cfg.Workers)
		if err != nil {
			return err
		}

		if compareDynamo || cfg.Dynamo.Enabled {
			client, err := db.New(cfg.Dynamo)
			if err != nil {
				return err
			}
			for _, rec := range report.Records {
				if err := client.PutComparison(cmd.Context(), rec); err != nil {
					return err
				}
			}
			logging.Info(fmt.Sprintf("recorded %d comparisons", len(report.Records)), logging.Fields{"table": cfg.Dynamo.Table})
		}

		out := cmd.OutOrStdout()
		if compareFormat != formatText {
			return encode(out, compareFormat, report)
		}
		for _, rec := range report.Records {
			fmt.Fprintf(out, "%6.2f%%  %s\n", rec.Percentage, rec.File)
		}
		for _, f := range report.Skipped {
			fmt.Fprintf(out, "skipped  %s\n", f)
		}
		s := report.Summary
		fmt.Fprintf(out, "\n%d files, average %.2f%%, min %.2f%%, max %.2f%%\n", s.Files, s.Average, s.Minimum, s.Maximum)
		return nil
	},
}
