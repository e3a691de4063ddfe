package analysis

import "math"

// Path lists the segment indices where chosen spans begin, followed by the
// final segment.
type Path []int

const none = -1

// LongestPath finds the maximum-score path from start to end with a single
// relaxation pass in index order. Edge scores may be negative. On equal
// totals the first relaxation wins, which makes the result reproducible.
// It returns nil when start..end is not a valid range of the graph.
func LongestPath(g *Graph, start, end int) (Path, int) {
	if start < 0 || end >= g.Size || start > end {
		return nil, 0
	}

	best := make([]int, g.Size)
	prev := make([]int, g.Size)
	for i := range best {
		best[i] = math.MinInt
		prev[i] = none
	}
	best[start] = 0

	for u := start; u < end; u++ {
		if best[u] == math.MinInt {
			continue
		}
		for _, e := range g.Out[u] {
			if e.To > end {
				break
			}
			if score := best[u] + e.Score; score > best[e.To] {
				best[e.To] = score
				prev[e.To] = u
			}
		}
	}

	path := Path{end}
	for v := prev[end]; v != none; v = prev[v] {
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, best[end]
}

// Solve returns the best path over the whole graph, from 0 to Size-1.
func Solve(g *Graph) Path {
	path, _ := LongestPath(g, 0, g.Size-1)
	return path
}
