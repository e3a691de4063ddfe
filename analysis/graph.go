package analysis

import (
	"context"

	"github.com/jsphweid/chordal/chord"
	"github.com/jsphweid/chordal/model"
	"golang.org/x/sync/errgroup"
)

// Edge treats minimal segments [From, To) as one chord.
type Edge struct {
	From   int
	To     int
	Score  int
	Labels []model.Label
}

// Graph is the complete forward DAG over segment indices. Out[u] holds the
// edges u->v for v = u+1 .. Size-1, in increasing v, so index order is a
// topological order. The last segment has no outgoing edges.
type Graph struct {
	Size int
	Out  [][]Edge
}

func newGraph(size int) *Graph {
	return &Graph{Size: size, Out: make([][]Edge, size)}
}

func (g *Graph) Edge(u, v int) (Edge, bool) {
	if u < 0 || u >= v || v >= g.Size {
		return Edge{}, false
	}
	out := g.Out[u]
	if v-u-1 >= len(out) {
		return Edge{}, false
	}
	return out[v-u-1], true
}

// edgesFrom scores every span starting at u. The notes of segment v are
// added only after edge u->v has been recorded, so that edge never sees v.
func edgesFrom(segments []model.Segment, u int) []Edge {
	var tally chord.Tally
	tally.Add(segments[u].Notes)

	edges := make([]Edge, 0, len(segments)-u-1)
	for v := u + 1; v < len(segments); v++ {
		score, labels := tally.Score()
		edges = append(edges, Edge{From: u, To: v, Score: score, Labels: labels})
		tally.Add(segments[v].Notes)
	}
	return edges
}

func Build(segments []model.Segment) *Graph {
	g := newGraph(len(segments))
	for u := 0; u < len(segments)-1; u++ {
		g.Out[u] = edgesFrom(segments, u)
	}
	return g
}

// BuildConcurrent builds the same graph as Build, scoring the edges of
// different start segments on up to workers goroutines (unbounded when
// workers <= 0).
func BuildConcurrent(ctx context.Context, segments []model.Segment, workers int) (*Graph, error) {
	g := newGraph(len(segments))
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for u := 0; u < len(segments)-1; u++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g.Out[u] = edgesFrom(segments, u)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}
