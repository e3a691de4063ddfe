package compare

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the accuracy percentages of many compared files.
type Summary struct {
	Files   int     `json:"files"`
	Average float64 `json:"average"`
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
}

func Summarize(percentages []float64) Summary {
	if len(percentages) == 0 {
		return Summary{}
	}
	return Summary{
		Files:   len(percentages),
		Average: stat.Mean(percentages, nil),
		Minimum: floats.Min(percentages),
		Maximum: floats.Max(percentages),
	}
}
