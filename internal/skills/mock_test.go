package skills

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockDriver struct {
	Results  map[string]neo4j.EagerResult
	Queries  []string
	Params   []map[string]interface{}
	Err      error
	ErrQuery string
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if m.Err != nil && (m.ErrQuery == "" || m.ErrQuery == query) {
		return neo4j.EagerResult{}, m.Err
	}
	return m.Results[query], nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

type recordingRenderer struct {
	calls [][]Node
	cb    Callbacks
}

func (r *recordingRenderer) RenderGraph(nodes []Node, edges []Edge, cb Callbacks) error {
	r.calls = append(r.calls, nodes)
	r.cb = cb
	return nil
}
