package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/chordal/corpus"
	"github.com/jsphweid/chordal/logging"
	"github.com/jsphweid/chordal/model"
	"github.com/spf13/cobra"
)

var (
	analyzeFormat string
	analyzeMax    int
	analyzeStore  bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatText, "output of a single file: text, json or yaml")
	analyzeCmd.Flags().IntVar(&analyzeMax, "max", 0, "analyse at most this many files of a directory")
	analyzeCmd.Flags().BoolVar(&analyzeStore, "store", false, "archive each run under the out dir")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file or directory]",
	Short: "Labels the chords of one score or a directory of scores",
	Long: `Labels the chords of one score or a directory of scores. Every score
gets an annotated copy and a JSON analysis in the out dir. Without an
argument the media dir is analysed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(analyzeFormat); err != nil {
			return err
		}
		target := cfg.MediaDir
		if len(args) == 1 {
			target = args[0]
		}
		info, err := os.Stat(target)
		if err != nil {
			return err
		}

		var runs []model.Run
		if info.IsDir() {
			files, err := corpus.Gather(target, analyzeMax)
			if err != nil {
				return err
			}
			logging.Info(fmt.Sprintf("analysing %d midi files", len(files)), logging.Fields{"dir": target})
			runs, err = corpus.AnalyzeAll(cmd.Context(), files, cfg.OutDir, cfg.Workers)
			if err != nil {
				return err
			}
		} else {
			run, err := corpus.AnalyzeFile(cmd.Context(), target, cfg.OutDir, cfg.Workers)
			if err != nil {
				return err
			}
			runs = append(runs, run)
			if err := printRun(cmd, run); err != nil {
				return err
			}
		}

		if analyzeStore {
			return storeRuns(runs)
		}
		return nil
	},
}

func printRun(cmd *cobra.Command, run model.Run) error {
	out := cmd.OutOrStdout()
	if analyzeFormat != formatText {
		return encode(out, analyzeFormat, run.Analysis)
	}
	fmt.Fprintf(out, "%s: %d segments, %d spans\n", run.File, len(run.Segments), len(run.Analysis.Spans))
	printSpans(out, run.Segments, run.Analysis)
	return nil
}

func storeRuns(runs []model.Run) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	for _, run := range runs {
		if err := s.Save(run); err != nil {
			return err
		}
		logging.Debug("stored run", logging.Fields{"id": run.ID, "file": run.File})
	}
	logging.Info(fmt.Sprintf("stored %d runs", len(runs)))
	return nil
}
