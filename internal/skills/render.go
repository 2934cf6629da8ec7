package skills

import (
	"fmt"
	"io"
	"strings"
)

// Callbacks are the interactions a renderer reports back.
type Callbacks struct {
	OnNodeClick func(nodeID string)
}

// Renderer draws the visible part of a skills graph. Layout is entirely the
// renderer's concern.
type Renderer interface {
	RenderGraph(nodes []Node, edges []Edge, cb Callbacks) error
}

// Render draws the visible graph with r. Clicking a category toggles it and
// draws again.
func (s *State) Render(r Renderer) error {
	g := s.Graph()
	if g == nil {
		return fmt.Errorf("skills graph is not loaded")
	}
	visible := g.Visible()

	types := make(map[string]NodeType, len(g.Nodes))
	for _, n := range g.Nodes {
		types[n.ID] = n.Type
	}

	return r.RenderGraph(visible.Nodes, visible.Edges, Callbacks{
		OnNodeClick: func(id string) {
			if types[id] != NodeCategory {
				return
			}
			s.ToggleCategory(id)
			_ = s.Render(r)
		},
	})
}

// TreeRenderer writes the graph as an indented outline, following edges
// from root nodes. Collapsed categories are marked with "+".
type TreeRenderer struct {
	W         io.Writer
	Collapsed map[string]bool
}

func (t TreeRenderer) RenderGraph(nodes []Node, edges []Edge, _ Callbacks) error {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	children := make(map[string][]string)
	for _, e := range edges {
		if _, ok := byID[e.Target]; ok {
			children[e.Source] = append(children[e.Source], e.Target)
		}
	}

	var b strings.Builder
	seen := make(map[string]bool)
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		n := byID[id]
		marker := "-"
		if t.Collapsed[id] {
			marker = "+"
		}
		fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat("  ", depth), marker, n.Label)
		if seen[id] {
			return
		}
		seen[id] = true
		for _, c := range children[id] {
			walk(c, depth+1)
		}
	}

	for _, n := range nodes {
		if n.Type == NodeRoot {
			walk(n.ID, 0)
		}
	}
	// Nodes left over after a search have lost their path to the root.
	for _, n := range nodes {
		if !seen[n.ID] && n.Type == NodeCategory {
			walk(n.ID, 0)
		}
	}

	_, err := io.WriteString(t.W, b.String())
	return err
}
