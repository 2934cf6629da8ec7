package skills

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// State tracks which parts of a skills graph are visible. Categories can be
// collapsed one at a time and the whole graph can be narrowed by a search
// term; the two are independent until the search term is cleared.
type State struct {
	mu        sync.Mutex
	graph     *Graph
	loading   bool
	err       error
	collapsed map[string]bool
	ready     chan struct{}
}

// NewState starts loading the graph from src in the background. Use Ready
// to wait for the load to finish.
func NewState(ctx context.Context, src Source) *State {
	s := &State{
		loading:   true,
		collapsed: make(map[string]bool),
		ready:     make(chan struct{}),
	}

	go func() {
		defer close(s.ready)
		g, err := src.Load(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
		if err != nil {
			s.err = fmt.Errorf("failed to load skills graph: %w", err)
			return
		}
		s.graph = g.Clone()
	}()

	return s
}

// NewStateFromGraph returns an already loaded state over a copy of g.
func NewStateFromGraph(g *Graph) *State {
	ready := make(chan struct{})
	close(ready)
	return &State{
		graph:     g.Clone(),
		collapsed: make(map[string]bool),
		ready:     ready,
	}
}

func (s *State) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until loading finishes or ctx is done.
func (s *State) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Graph returns a copy of the graph with current visibility flags, or nil
// when it is not loaded.
func (s *State) Graph() *Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Clone()
}

func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *State) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *State) Collapsed() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.collapsed))
	for k, v := range s.collapsed {
		out[k] = v
	}
	return out
}

// ToggleCategory flips the collapsed flag of a category node and hides or
// shows the edges leaving it along with the skill nodes they point at. It
// returns the new flag; ids that are not category nodes are ignored.
//
// Only edges whose source is the toggled category are touched, so a skill
// with several parent categories follows whichever parent was toggled last.
func (s *State) ToggleCategory(categoryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return false
	}
	idx := s.graph.index()
	i, ok := idx[categoryID]
	if !ok || s.graph.Nodes[i].Type != NodeCategory {
		return false
	}

	collapsed := !s.collapsed[categoryID]
	s.collapsed[categoryID] = collapsed

	for j := range s.graph.Edges {
		e := &s.graph.Edges[j]
		if e.Source != categoryID {
			continue
		}
		e.Hidden = collapsed
		if t, ok := idx[e.Target]; ok && s.graph.Nodes[t].Type == NodeSkill {
			s.graph.Nodes[t].Hidden = collapsed
		}
	}
	return collapsed
}

// FilterNodes narrows the graph to nodes whose label contains term. A
// matching skill brings in its parent categories and a matching category
// brings in its skills. A blank term drops the search and restores the
// visibility implied by the collapsed categories.
func (s *State) FilterNodes(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		s.applyCollapsedLocked()
		return
	}

	idx := s.graph.index()
	direct := make(map[string]bool)
	for _, n := range s.graph.Nodes {
		if strings.Contains(strings.ToLower(n.Label), term) {
			direct[n.ID] = true
		}
	}

	matches := make(map[string]bool, len(direct))
	for id := range direct {
		matches[id] = true
	}
	for _, e := range s.graph.Edges {
		src, okS := idx[e.Source]
		tgt, okT := idx[e.Target]
		if !okS || !okT {
			continue
		}
		srcType, tgtType := s.graph.Nodes[src].Type, s.graph.Nodes[tgt].Type
		if srcType != NodeCategory || tgtType != NodeSkill {
			continue
		}
		if direct[e.Target] {
			matches[e.Source] = true
		}
		if direct[e.Source] {
			matches[e.Target] = true
		}
	}

	for i := range s.graph.Nodes {
		s.graph.Nodes[i].Hidden = !matches[s.graph.Nodes[i].ID]
	}
	for i := range s.graph.Edges {
		e := &s.graph.Edges[i]
		e.Hidden = !(matches[e.Source] && matches[e.Target])
	}
}

// applyCollapsedLocked recomputes visibility from the collapsed flags alone:
// an edge leaving a collapsed category is hidden, as is the skill it reaches.
func (s *State) applyCollapsedLocked() {
	idx := s.graph.index()
	for i := range s.graph.Nodes {
		s.graph.Nodes[i].Hidden = false
	}
	for i := range s.graph.Edges {
		e := &s.graph.Edges[i]
		e.Hidden = s.collapsed[e.Source]
		if !e.Hidden {
			continue
		}
		if t, ok := idx[e.Target]; ok && s.graph.Nodes[t].Type == NodeSkill {
			s.graph.Nodes[t].Hidden = true
		}
	}
}
