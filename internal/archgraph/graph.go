package archgraph

import "sort"

// PkgInfo is package-manager provenance for an external node.
type PkgInfo struct {
	Manager string `json:"manager"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// NodeMeta carries the language tag and optional provenance for a node.
type NodeMeta struct {
	Lang string   `json:"lang,omitempty"`
	Pkg  *PkgInfo `json:"pkg,omitempty"`
}

// Node is one module/package in the final graph.
type Node struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Type  string    `json:"type"` // internal | external
	Meta  *NodeMeta `json:"meta,omitempty"`
}

// Edge is a weighted import relationship. Weight counts raw import
// occurrences collapsed into this (source, target) pair.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Stats summarizes a graph.
type Stats struct {
	NodeCount     int `json:"node_count"`
	EdgeCount     int `json:"edge_count"`
	InternalNodes int `json:"internal_nodes"`
	ExternalNodes int `json:"external_nodes"`
}

// Graph is the final, node-closed document: every edge endpoint appears in
// Nodes. Graphs handed out by the builder are immutable snapshots.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Stats Stats  `json:"stats"`
}

type edgeKey struct{ src, dst string }

// accumulator merges per-file extraction results. Weight accumulation is
// commutative; metadata and language tags are first-writer-wins: once a node
// id has been observed its tag is fixed.
type accumulator struct {
	nodes    map[string]struct{}
	meta     map[string]*NodeMeta
	internal map[string]struct{}
	edges    map[edgeKey]int
}

func newAccumulator() *accumulator {
	return &accumulator{
		nodes:    make(map[string]struct{}),
		meta:     make(map[string]*NodeMeta),
		internal: make(map[string]struct{}),
		edges:    make(map[edgeKey]int),
	}
}

// addNode registers id with a language tag. The first tag wins.
func (a *accumulator) addNode(id, lang string) {
	a.nodes[id] = struct{}{}
	if _, ok := a.meta[id]; !ok {
		a.meta[id] = &NodeMeta{Lang: lang}
	}
}

// addPkgNode registers an external package node with provenance. Provenance
// only sticks when the node has not been seen before.
func (a *accumulator) addPkgNode(id, lang string, pkg *PkgInfo) {
	a.nodes[id] = struct{}{}
	if _, ok := a.meta[id]; !ok {
		a.meta[id] = &NodeMeta{Lang: lang, Pkg: pkg}
	}
}

// markInternal flags id as repository-internal. Never unset within a build.
func (a *accumulator) markInternal(id string) {
	a.internal[id] = struct{}{}
}

// addEdge records one raw import occurrence.
func (a *accumulator) addEdge(src, dst string) {
	a.edges[edgeKey{src, dst}]++
}

func (a *accumulator) isInternal(id string) bool {
	_, ok := a.internal[id]
	return ok
}

func (a *accumulator) langOf(id string) string {
	if m, ok := a.meta[id]; ok {
		return m.Lang
	}
	return ""
}

// snapshot applies the filter options and renders the sorted, node-closed
// graph document.
func (a *accumulator) snapshot(sel Language, all bool, minWeight, nodeCap int) *Graph {
	// Stage 1: language filter.
	kept := make(map[string]struct{}, len(a.nodes))
	for id := range a.nodes {
		if all || selectorAdmits(sel, a.langOf(id)) {
			kept[id] = struct{}{}
		}
	}

	// Stage 2: minimum edge weight; both endpoints must have survived.
	if minWeight < 1 {
		minWeight = 1
	}
	type flatEdge struct {
		src, dst string
		w        int
	}
	var edges []flatEdge
	for k, w := range a.edges {
		if w < minWeight {
			continue
		}
		if _, ok := kept[k.src]; !ok {
			continue
		}
		if _, ok := kept[k.dst]; !ok {
			continue
		}
		edges = append(edges, flatEdge{k.src, k.dst, w})
	}

	// Stage 3: degree-ranked node cap, balanced internal/external.
	if nodeCap > 0 {
		deg := make(map[string]int)
		for _, e := range edges {
			deg[e.src]++
			deg[e.dst]++
		}
		var internals, externals []string
		for id := range kept {
			if a.isInternal(id) {
				internals = append(internals, id)
			} else {
				externals = append(externals, id)
			}
		}
		byDegree := func(ids []string) {
			sort.Slice(ids, func(i, j int) bool {
				if deg[ids[i]] != deg[ids[j]] {
					return deg[ids[i]] > deg[ids[j]]
				}
				return ids[i] < ids[j]
			})
		}
		byDegree(internals)
		byDegree(externals)
		// At least 10 internal nodes when that many exist, at most half
		// the cap; externals fill the remaining budget.
		half := nodeCap / 2
		if half < 10 {
			half = 10
		}
		if half > len(internals) {
			half = len(internals)
		}
		internals = internals[:half]
		rest := nodeCap - len(internals)
		if rest < 0 {
			rest = 0
		}
		if rest > len(externals) {
			rest = len(externals)
		}
		externals = externals[:rest]

		capped := make(map[string]struct{}, len(internals)+len(externals))
		for _, id := range internals {
			capped[id] = struct{}{}
		}
		for _, id := range externals {
			capped[id] = struct{}{}
		}
		var refiltered []flatEdge
		for _, e := range edges {
			if _, ok := capped[e.src]; !ok {
				continue
			}
			if _, ok := capped[e.dst]; !ok {
				continue
			}
			refiltered = append(refiltered, e)
		}
		edges = refiltered
		kept = capped
	}

	g := &Graph{Nodes: make([]Node, 0, len(kept)), Edges: make([]Edge, 0, len(edges))}
	ids := make([]string, 0, len(kept))
	for id := range kept {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := Node{ID: id, Label: id, Type: "external"}
		if a.isInternal(id) {
			n.Type = "internal"
			g.Stats.InternalNodes++
		} else {
			g.Stats.ExternalNodes++
		}
		if m, ok := a.meta[id]; ok {
			n.Meta = m
		}
		g.Nodes = append(g.Nodes, n)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].src != edges[j].src {
			return edges[i].src < edges[j].src
		}
		return edges[i].dst < edges[j].dst
	})
	for _, e := range edges {
		g.Edges = append(g.Edges, Edge{Source: e.src, Target: e.dst, Weight: e.w})
	}
	g.Stats.NodeCount = len(g.Nodes)
	g.Stats.EdgeCount = len(g.Edges)
	return g
}
