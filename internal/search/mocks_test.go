package search

import (
	"context"
	"sync"

	"github.com/crimson-sun/stackgrep/internal/logsearch"
	"github.com/crimson-sun/stackgrep/internal/model"
)

// mockDirectory is an in-memory Directory recording every call.
type mockDirectory struct {
	mu            sync.Mutex
	stacks        []string
	listErr       error
	resources     map[string][]model.Resource
	resourcesErr  map[string]error
	listCalls     int
	resourceCalls []string
	filters       []string
}

func (m *mockDirectory) ListStableStacks(ctx context.Context, nameFilter string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.filters = append(m.filters, nameFilter)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.stacks, nil
}

func (m *mockDirectory) ListResources(ctx context.Context, stackName string) ([]model.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resourceCalls = append(m.resourceCalls, stackName)
	if err := m.resourcesErr[stackName]; err != nil {
		return nil, err
	}
	return m.resources[stackName], nil
}

func (m *mockDirectory) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls + len(m.resourceCalls)
}

// mockBackend is an in-memory Backend. Query ids are "q:" + log group.
// Unconfigured queries report StatusComplete and empty results.
type mockBackend struct {
	mu          sync.Mutex
	startErrs   map[string]error              // per log group
	statusSeqs  map[string][]logsearch.Status // per query id; last entry repeats
	statusIdx   map[string]int
	results     map[string][]model.Record // per query id
	resultsErrs map[string]error          // per query id
	startCalls  int
	statusCalls int
	resultCalls []string
	queries     []string // query strings submitted, in call order
}

func queryID(logGroup string) string {
	return "q:" + logGroup
}

func (m *mockBackend) StartQuery(ctx context.Context, logGroup, queryString string, limit int, window model.TimeWindow) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls++
	m.queries = append(m.queries, queryString)
	if err := m.startErrs[logGroup]; err != nil {
		return "", err
	}
	return queryID(logGroup), nil
}

func (m *mockBackend) QueryStatus(ctx context.Context, id string) (logsearch.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls++
	seq, ok := m.statusSeqs[id]
	if !ok || len(seq) == 0 {
		return logsearch.StatusComplete, nil
	}
	if m.statusIdx == nil {
		m.statusIdx = make(map[string]int)
	}
	idx := m.statusIdx[id]
	if idx >= len(seq) {
		idx = len(seq) - 1
	}
	m.statusIdx[id]++
	return seq[idx], nil
}

func (m *mockBackend) GetResults(ctx context.Context, id string) ([]model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultCalls = append(m.resultCalls, id)
	if err := m.resultsErrs[id]; err != nil {
		return nil, err
	}
	return m.results[id], nil
}

func (m *mockBackend) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCalls + m.statusCalls + len(m.resultCalls)
}

// mockReports captures written reports without touching the filesystem.
type mockReports struct {
	mu      sync.Mutex
	written []model.Report
	err     error
}

func (m *mockReports) Write(rep model.Report) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.written = append(m.written, rep)
	return rep.Stack + "_results.json", nil
}

// nopBar satisfies ProgressRenderer without drawing anything.
type nopBar struct{}

func (nopBar) Render(int) {}
func (nopBar) Done()      {}
