// Package skills holds the skills graph, its collapse/search visibility
// state and the sources it can be loaded from.
package skills

import (
	"encoding/json"
	"fmt"
)

type NodeType string

const (
	NodeRoot     NodeType = "root"
	NodeCategory NodeType = "category"
	NodeSkill    NodeType = "skill"
)

// Default colours by node type.
const (
	ColorRoot     = "#1fd38d"
	ColorCategory = "#61e7b9"
	ColorSkill    = "#a0f0d3"
)

type Node struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Type   NodeType `json:"type"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Size   *float64 `json:"size,omitempty"`
	Color  string   `json:"color,omitempty"`
	Hidden bool     `json:"hidden"`
}

type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship,omitempty"`
	Hidden       bool   `json:"hidden"`
}

// UnmarshalJSON also accepts the from/to spelling of endpoints and derives
// a missing id from them.
func (e *Edge) UnmarshalJSON(data []byte) error {
	type plain Edge
	aux := struct {
		*plain
		From string `json:"from"`
		To   string `json:"to"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.Source == "" {
		e.Source = aux.From
	}
	if e.Target == "" {
		e.Target = aux.To
	}
	if e.ID == "" {
		e.ID = e.Source + "->" + e.Target
	}
	return nil
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Decode parses a skills graph document, validates it and fills in colours.
// Hidden flags in the input are ignored.
func Decode(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse skills graph: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.Colorize()
	for i := range g.Nodes {
		g.Nodes[i].Hidden = false
	}
	for i := range g.Edges {
		g.Edges[i].Hidden = false
	}
	return &g, nil
}

// Validate checks that ids are unique, edges reference existing nodes and
// every node is reachable from a root.
func (g *Graph) Validate() error {
	types := make(map[string]NodeType, len(g.Nodes))
	var roots []string
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %q has no id", n.Label)
		}
		if _, dup := types[n.ID]; dup {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		switch n.Type {
		case NodeRoot:
			roots = append(roots, n.ID)
		case NodeCategory, NodeSkill:
		default:
			return fmt.Errorf("node %q has unknown type %q", n.ID, n.Type)
		}
		types[n.ID] = n.Type
	}

	adj := make(map[string][]string)
	for _, e := range g.Edges {
		if _, ok := types[e.Source]; !ok {
			return fmt.Errorf("edge %q references unknown source %q", e.ID, e.Source)
		}
		if _, ok := types[e.Target]; !ok {
			return fmt.Errorf("edge %q references unknown target %q", e.ID, e.Target)
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	if len(g.Nodes) == 0 {
		return nil
	}
	if len(roots) == 0 {
		return fmt.Errorf("skills graph has no root node")
	}

	visited := make(map[string]bool, len(g.Nodes))
	queue := append([]string(nil), roots...)
	for _, r := range roots {
		visited[r] = true
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if !visited[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
	}
	for _, n := range g.Nodes {
		if !visited[n.ID] {
			return fmt.Errorf("node %q is not reachable from the root", n.ID)
		}
	}
	return nil
}

func (g *Graph) Colorize() {
	for i := range g.Nodes {
		if g.Nodes[i].Color != "" {
			continue
		}
		switch g.Nodes[i].Type {
		case NodeRoot:
			g.Nodes[i].Color = ColorRoot
		case NodeCategory:
			g.Nodes[i].Color = ColorCategory
		default:
			g.Nodes[i].Color = ColorSkill
		}
	}
}

func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}

// Visible returns only the nodes and edges that are not hidden.
func (g *Graph) Visible() *Graph {
	out := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	for _, n := range g.Nodes {
		if !n.Hidden {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if !e.Hidden {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

func (g *Graph) index() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		idx[n.ID] = i
	}
	return idx
}
