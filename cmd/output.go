package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/chordal/model"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q, want text, json or yaml", format)
}

// encode writes v as JSON or YAML. Text output is left to the caller.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return checkFormat(format)
}

func printSpans(w io.Writer, segments []model.Segment, a model.Analysis) {
	for _, span := range a.Spans {
		var tick int64
		if span.Start < len(segments) {
			tick = segments[span.Start].Tick
		}
		fmt.Fprintf(w, "%4d-%-4d tick %-8d score %-4d %s\n",
			span.Start, span.End, tick, span.Score,
			strings.Join(model.LabelStrings(span.Labels), " "))
	}
}
