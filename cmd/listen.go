package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordal/analysis"
	"github.com/jsphweid/chordal/logging"
	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/note"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	listenPort   int
	listenWindow int
	listenWait   time.Duration
)

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "MIDI input port number")
	listenCmd.Flags().IntVarP(&listenWindow, "window", "w", 8, "segments kept for re-analysis")
	listenCmd.Flags().DurationVar(&listenWait, "debounce", 80*time.Millisecond, "quiet time before a chord change counts")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Labels chords played on a MIDI input",
	Long:  `Labels chords played on a MIDI input, re-analysing the last few segments on every change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()
		in, err := midi.InPort(listenPort)
		if err != nil {
			return fmt.Errorf("opening midi input %d: %w", listenPort, err)
		}

		l := newListener(listenWindow, cmd.OutOrStdout())
		debounced := debounce.New(listenWait)

		stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				l.noteOn(key)
			case msg.GetNoteEnd(&ch, &key):
				l.noteOff(key)
			default:
				return
			}
			debounced(l.capture)
		})
		if err != nil {
			return err
		}
		defer stop()

		logging.Info("listening", logging.Fields{"port": in.String()})
		<-cmd.Context().Done()
		return nil
	},
}

// listener turns a live note stream into segments and reports the label
// of the latest span.
type listener struct {
	mu       sync.Mutex
	sounding map[uint8]int
	history  []model.PitchClassSet
	window   int
	out      io.Writer
}

func newListener(window int, out io.Writer) *listener {
	if window < 1 {
		window = 1
	}
	return &listener{sounding: make(map[uint8]int), window: window, out: out}
}

func (l *listener) noteOn(key uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sounding[key]++
}

func (l *listener) noteOff(key uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sounding[key] <= 1 {
		delete(l.sounding, key)
		return
	}
	l.sounding[key]--
}

func (l *listener) current() model.PitchClassSet {
	var set model.PitchClassSet
	for key := range l.sounding {
		set = set.Add(model.PitchClass(note.FromKey(key)))
	}
	return set
}

// capture records the sounding notes as a new segment and prints the
// labels of the span that ends the best analysis of the window.
func (l *listener) capture() {
	l.mu.Lock()
	set := l.current()
	if set == 0 || (len(l.history) > 0 && l.history[len(l.history)-1] == set) {
		l.mu.Unlock()
		return
	}
	l.history = append(l.history, set)
	if len(l.history) > l.window {
		l.history = l.history[len(l.history)-l.window:]
	}
	labels := l.latest()
	l.mu.Unlock()

	fmt.Fprintf(l.out, "%-20s %s\n", describe(set), strings.Join(model.LabelStrings(labels), " "))
}

// latest analyses the window followed by a silent end marker, so the
// newest segment is covered by a span.
func (l *listener) latest() []model.Label {
	sets := append(append([]model.PitchClassSet(nil), l.history...), 0)
	a := analysis.Analyze(analysis.Segments(sets))
	if len(a.Spans) == 0 {
		return nil
	}
	return a.Spans[len(a.Spans)-1].Labels
}

func describe(set model.PitchClassSet) string {
	var names []string
	for _, pc := range set.Classes() {
		names = append(names, pc.String())
	}
	return strings.Join(names, " ")
}
