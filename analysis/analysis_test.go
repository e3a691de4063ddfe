package analysis

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/jsphweid/chordal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcs(classes ...model.PitchClass) model.PitchClassSet {
	return model.NewPitchClassSet(classes...)
}

// a short cadence with passing tones and a rest-like empty segment
var progression = []model.PitchClassSet{
	pcs(0, 4, 7),
	pcs(0, 4),
	pcs(5, 9, 0),
	pcs(2),
	pcs(2, 5, 9),
	pcs(7, 11, 2, 5),
	pcs(7, 11),
	pcs(),
	pcs(0, 4, 7),
	pcs(1, 6),
}

func bruteForceBest(g *Graph) int {
	n := g.Size
	best := math.MinInt
	for mask := 0; mask < 1<<(n-2); mask++ {
		total, from := 0, 0
		for v := 1; v < n; v++ {
			if v == n-1 || mask&(1<<(v-1)) != 0 {
				e, _ := g.Edge(from, v)
				total += e.Score
				from = v
			}
		}
		if total > best {
			best = total
		}
	}
	return best
}

func TestScenarioMergesRepeatedTriad(t *testing.T) {
	segments := Segments([]model.PitchClassSet{pcs(0, 4, 7), pcs(0, 4, 7), pcs(2, 5, 9)})
	g := Build(segments)
	path := Solve(g)

	assert := assert.New(t)
	assert.Equal(Path{0, 2}, path)
	assert.Equal(model.Analysis{
		Segments: 3,
		Spans: []model.Span{
			{Start: 0, End: 2, Score: 6, Labels: []model.Label{{Root: 0, Quality: model.Major}}},
		},
	}, Annotate(path, g))
}

func TestGraphIsCompleteAndForward(t *testing.T) {
	g := Build(Segments(progression))
	n := len(progression)

	assert := assert.New(t)
	assert.Equal(n, g.Size)
	assert.Empty(g.Out[n-1])
	for u := 0; u < n-1; u++ {
		assert.Len(g.Out[u], n-u-1)
		for i, e := range g.Out[u] {
			assert.Equal(u, e.From)
			assert.Equal(u+i+1, e.To)
			assert.NotEmpty(e.Labels)
		}
	}

	_, ok := g.Edge(3, 3)
	assert.False(ok)
	_, ok = g.Edge(4, 2)
	assert.False(ok)
	_, ok = g.Edge(0, n)
	assert.False(ok)
}

func TestEdgeIgnoresItsDestinationSegment(t *testing.T) {
	a := Segments([]model.PitchClassSet{pcs(0, 4, 7), pcs(0, 4), pcs(2, 5, 9)})
	b := Segments([]model.PitchClassSet{pcs(0, 4, 7), pcs(0, 4), pcs(1, 3, 6, 8, 10)})

	edgeA, _ := Build(a).Edge(0, 2)
	edgeB, _ := Build(b).Edge(0, 2)

	assert := assert.New(t)
	assert.Equal(edgeA, edgeB)
	assert.Equal(5, edgeA.Score)
}

func TestPathSpansWholeSequence(t *testing.T) {
	for n := 2; n <= len(progression); n++ {
		t.Run(fmt.Sprintf("%d segments", n), func(t *testing.T) {
			g := Build(Segments(progression[:n]))
			path, score := LongestPath(g, 0, n-1)

			assert := assert.New(t)
			assert.Equal(0, path[0])
			assert.Equal(n-1, path[len(path)-1])
			for i := 1; i < len(path); i++ {
				assert.Less(path[i-1], path[i])
			}
			assert.Equal(bruteForceBest(g), score)
		})
	}
}

func TestSolveHandlesNegativeEdges(t *testing.T) {
	// every edge here scores below zero; the best partition is still found
	segments := Segments([]model.PitchClassSet{pcs(1, 2, 3), pcs(), pcs(6, 7, 8), pcs(11), pcs(0)})
	g := Build(segments)
	path, score := LongestPath(g, 0, g.Size-1)

	assert := assert.New(t)
	assert.Less(score, 0)
	assert.Equal(bruteForceBest(g), score)

	total := 0
	for i := 0; i+1 < len(path); i++ {
		e, ok := g.Edge(path[i], path[i+1])
		assert.True(ok)
		total += e.Score
	}
	assert.Equal(score, total)
}

func TestLongestPathSubRange(t *testing.T) {
	g := Build(Segments(progression))
	path, score := LongestPath(g, 2, 6)

	assert := assert.New(t)
	assert.Equal(2, path[0])
	assert.Equal(6, path[len(path)-1])

	sub := Build(Segments(progression[2:7]))
	_, subScore := LongestPath(sub, 0, 4)
	assert.Equal(subScore, score)

	bad, _ := LongestPath(g, 5, 2)
	assert.Nil(bad)
	bad, _ = LongestPath(g, 0, len(progression))
	assert.Nil(bad)
}

func TestTinyInputs(t *testing.T) {
	assert := assert.New(t)

	empty := Build(nil)
	assert.Nil(Solve(empty))
	assert.Equal(model.Analysis{}, Analyze(nil))

	single := Build(Segments([]model.PitchClassSet{pcs(0, 4, 7)}))
	assert.Equal(Path{0}, Solve(single))
	assert.Empty(Analyze(Segments([]model.PitchClassSet{pcs(0, 4, 7)})).Spans)

	pair := Analyze(Segments([]model.PitchClassSet{pcs(0, 4, 7), pcs(2)}))
	assert.Len(pair.Spans, 1)
	assert.Equal(0, pair.Spans[0].Start)
	assert.Equal(1, pair.Spans[0].End)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	want := Analyze(Segments(progression))
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, Analyze(Segments(progression)))
	}
}

func TestAnnotateIsIdempotent(t *testing.T) {
	g := Build(Segments(progression))
	path := Solve(g)

	first := Annotate(path, g)
	second := Annotate(path, g)

	assert := assert.New(t)
	assert.Equal(first, second)
	assert.Equal(len(path)-1, len(second.Spans))

	// labels are copies; editing the result leaves the graph alone
	first.Spans[0].Labels[0].Quality = "changed"
	assert.Equal(second, Annotate(path, g))
}

func TestBuildConcurrentMatchesBuild(t *testing.T) {
	segments := Segments(progression)
	want := Build(segments)

	for _, workers := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			g, err := BuildConcurrent(context.Background(), segments, workers)
			require.NoError(t, err)
			assert.Equal(t, want, g)
		})
	}

	a, err := AnalyzeConcurrent(context.Background(), segments, 2)
	require.NoError(t, err)
	assert.Equal(t, Analyze(segments), a)
}

func TestBuildConcurrentStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildConcurrent(ctx, Segments(progression), 2)
	assert.ErrorIs(t, err, context.Canceled)
}
