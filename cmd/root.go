package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jsphweid/chordal/config"
	"github.com/jsphweid/chordal/constants"
	"github.com/jsphweid/chordal/logging"
	"github.com/jsphweid/chordal/store"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "chordal",
	Short: "Chord labelling of symbolic scores",
	Long: `chordal splits MIDI scores into minimal segments, groups them into
the best scoring chord spans and compares the result with hand-made
analyses stored as lyrics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./chordal.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// Setup loads .env, the config file and the environment into the shared
// config and applies the log level.
func Setup() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = logging.DebugLevel
	}
	logging.SetLevel(level)
	return nil
}

func openStore() (*store.Store, error) {
	return store.New(filepath.Join(cfg.OutDir, constants.RunsDir))
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
