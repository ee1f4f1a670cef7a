// Package scheduler implements topological layering of a composite
// bric's immediate children by their recorded sibling source/dest
// edges, and the layered cooperative pump loop that drives mappers,
// reducers and transforms to completion.
//
// Grounded directly on
// _examples/original_source/src/MRBric.cxx's calcBricGraphLayers (the
// depth-first topological sort) and MRBric::processingStep (the top/
// current/bottom cursor pump), generalized so any bric with children —
// not just a dedicated "map/reduce" bric — can be scheduled this way.
package scheduler

import (
	"sort"

	"dbrx/bric"
	"dbrx/dbrxerr"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// CalcLayers assigns each bric in brics a layer number: a source-less
// bric sits at layer 0; every other bric sits at one more than the
// deepest layer among its recorded sources. Returns a ScheduleError of
// kind "not a DAG" if the sibling source graph has a cycle.
func CalcLayers(brics []*bric.Bric) (map[*bric.Bric]int, error) {
	layer := make(map[*bric.Bric]int, len(brics))
	state := make(map[*bric.Bric]visitState, len(brics))

	var toVisit []*bric.Bric
	toVisit = append(toVisit, brics...)

	for len(toVisit) > 0 {
		node := toVisit[len(toVisit)-1]
		deps := node.Sources()

		switch state[node] {
		case visited:
			toVisit = toVisit[:len(toVisit)-1]
			continue
		}

		if len(deps) == 0 {
			layer[node] = 0
			state[node] = visited
			toVisit = toVisit[:len(toVisit)-1]
			continue
		}

		allDepsVisited := true
		for _, dep := range deps {
			switch state[dep] {
			case visiting:
				return nil, dbrxerr.Schedulef("not a DAG: cycle detected involving bric %q", dep.AbsolutePath())
			case unvisited:
				allDepsVisited = false
				toVisit = append(toVisit, dep)
			}
		}

		if allDepsVisited {
			maxDepLayer := 0
			for _, dep := range deps {
				if layer[dep] > maxDepLayer {
					maxDepLayer = layer[dep]
				}
			}
			layer[node] = 1 + maxDepLayer
			state[node] = visited
			toVisit = toVisit[:len(toVisit)-1]
		} else if state[node] != visiting {
			state[node] = visiting
		} else {
			return nil, dbrxerr.Schedulef("internal error during topological sort at bric %q", node.AbsolutePath())
		}
	}

	return layer, nil
}

// sortBricsByName orders brics by name identity, for deterministic
// within-layer iteration.
func sortBricsByName(brics []*bric.Bric) {
	sort.Slice(brics, func(i, j int) bool {
		return brics[i].Name().Less(brics[j].Name())
	})
}
