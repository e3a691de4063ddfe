package analysis

import (
	"github.com/jsphweid/chordal/model"
	"golang.org/x/exp/slices"
)

// Annotate turns each consecutive pair of the path into a span carrying
// the candidate labels of its edge. It does not modify g.
func Annotate(path Path, g *Graph) model.Analysis {
	a := model.Analysis{Segments: g.Size}
	for i := 0; i+1 < len(path); i++ {
		e, ok := g.Edge(path[i], path[i+1])
		if !ok {
			continue
		}
		a.Spans = append(a.Spans, model.Span{
			Start:  e.From,
			End:    e.To,
			Score:  e.Score,
			Labels: slices.Clone(e.Labels),
		})
	}
	return a
}
