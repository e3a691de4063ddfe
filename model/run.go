package model

import "time"

// Run is one analysed score as archived on disk.
type Run struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	CreatedAt time.Time `json:"created_at"`
	Segments  []Segment `json:"segments"`
	Analysis  Analysis  `json:"analysis"`
}

type RunOverview struct {
	ID        string
	File      string
	CreatedAt time.Time
	Segments  int
	Spans     int
}

func (r Run) Overview() RunOverview {
	return RunOverview{
		ID:        r.ID,
		File:      r.File,
		CreatedAt: r.CreatedAt,
		Segments:  len(r.Segments),
		Spans:     len(r.Analysis.Spans),
	}
}

// ComparisonRecord is the persisted outcome of comparing one analysed file
// against its ground truth.
type ComparisonRecord struct {
	File       string    `dynamodbav:"PK" json:"file"`
	GuessFile  string    `dynamodbav:"GuessFile" json:"guess_file"`
	Segments   int       `dynamodbav:"Segments" json:"segments"`
	Scores     []float64 `dynamodbav:"Scores" json:"scores"`
	Percentage float64   `dynamodbav:"Percentage" json:"percentage"`
	ComparedAt time.Time `dynamodbav:"ComparedAt" json:"compared_at"`
}
