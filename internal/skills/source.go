package skills

import (
	"context"
	"fmt"
	"os"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/folio/internal/driver"
)

// Source loads a skills graph.
type Source interface {
	Load(ctx context.Context) (*Graph, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*Graph, error)

func (f SourceFunc) Load(ctx context.Context) (*Graph, error) {
	return f(ctx)
}

// FileSource reads a JSON skills graph document from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Load(ctx context.Context) (*Graph, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return Decode(data)
}

// Neo4jSource reads SkillNode vertices and HAS_SKILL relationships.
type Neo4jSource struct {
	Driver driver.GraphDriver
}

func (s Neo4jSource) Load(ctx context.Context) (*Graph, error) {
	nodeRes, err := s.Driver.ExecuteQuery(ctx, driver.GetSkillNodesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill nodes: %w", err)
	}
	edgeRes, err := s.Driver.ExecuteQuery(ctx, driver.GetSkillEdgesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill edges: %w", err)
	}

	g := &Graph{}
	for _, rec := range nodeRes.Records {
		g.Nodes = append(g.Nodes, Node{
			ID:    recordString(rec, "id"),
			Label: recordString(rec, "label"),
			Type:  NodeType(recordString(rec, "type")),
			X:     recordFloat(rec, "x"),
			Y:     recordFloat(rec, "y"),
			Size:  recordFloat(rec, "size"),
			Color: recordString(rec, "color"),
		})
	}
	for _, rec := range edgeRes.Records {
		e := Edge{
			ID:           recordString(rec, "id"),
			Source:       recordString(rec, "source"),
			Target:       recordString(rec, "target"),
			Relationship: recordString(rec, "relationship"),
		}
		if e.ID == "" {
			e.ID = e.Source + "->" + e.Target
		}
		g.Edges = append(g.Edges, e)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.Colorize()
	return g, nil
}

// Seed replaces the skills graph stored in the database with g.
func Seed(ctx context.Context, d driver.GraphDriver, g *Graph) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := d.BuildIndices(ctx); err != nil {
		return err
	}
	if _, err := d.ExecuteQuery(ctx, driver.DeleteSkillGraphQuery, nil); err != nil {
		return fmt.Errorf("failed to clear skills graph: %w", err)
	}

	nodes := make([]map[string]interface{}, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = map[string]interface{}{
			"id":    n.ID,
			"label": n.Label,
			"type":  string(n.Type),
			"x":     floatParam(n.X),
			"y":     floatParam(n.Y),
			"size":  floatParam(n.Size),
			"color": n.Color,
			"order": i,
		}
	}
	if _, err := d.ExecuteQuery(ctx, driver.SaveSkillNodesQuery, map[string]interface{}{"nodes": nodes}); err != nil {
		return fmt.Errorf("failed to save skill nodes: %w", err)
	}

	edges := make([]map[string]interface{}, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = map[string]interface{}{
			"id":           e.ID,
			"source":       e.Source,
			"target":       e.Target,
			"relationship": e.Relationship,
			"order":        i,
		}
	}
	if _, err := d.ExecuteQuery(ctx, driver.SaveSkillEdgesQuery, map[string]interface{}{"edges": edges}); err != nil {
		return fmt.Errorf("failed to save skill edges: %w", err)
	}
	return nil
}

func recordString(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

func recordFloat(rec *neo4j.Record, key string) *float64 {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case float64:
		return &n
	case int64:
		f := float64(n)
		return &f
	}
	return nil
}

func floatParam(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
