package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/crimson-sun/stackgrep/internal/model"
)

func newCollectSearcher(be *mockBackend, opts Options) *Searcher {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(&mockDirectory{}, be, &mockReports{}, nopBar{}, logger, []string{"ERROR"}, opts)
}

func TestCollect_DropsEmptyAndInert(t *testing.T) {
	be := &mockBackend{
		results: map[string][]model.Record{
			queryID("/matched"): {{"@message": "ERROR x"}},
			// /empty returns no records
		},
	}
	s := newCollectSearcher(be, testOptions())

	handles := []model.QueryHandle{
		liveHandle("/empty"),
		{LogGroup: "/inert"},
		liveHandle("/matched"),
	}
	results, err := s.collect(context.Background(), handles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 retained result, got %d: %v", len(results), results)
	}
	if results[0].LogGroup != "/matched" {
		t.Fatalf("unexpected log group: %q", results[0].LogGroup)
	}
	if len(results[0].Records) != 1 || results[0].Records[0]["@message"] != "ERROR x" {
		t.Fatalf("unexpected records: %v", results[0].Records)
	}
	for _, id := range be.resultCalls {
		if id == queryID("/inert") || id == "" {
			t.Fatal("GetResults called for an inert handle")
		}
	}
}

func TestCollect_PreservesHandleOrder(t *testing.T) {
	groups := make([]string, 12)
	handles := make([]model.QueryHandle, 12)
	results := map[string][]model.Record{}
	for i := range groups {
		groups[i] = fmt.Sprintf("/g/%02d", i)
		handles[i] = liveHandle(groups[i])
		results[queryID(groups[i])] = []model.Record{{"@message": groups[i]}}
	}
	be := &mockBackend{results: results}

	opts := testOptions()
	opts.Concurrency = 5

	s := newCollectSearcher(be, opts)
	collected, err := s.collect(context.Background(), handles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(collected) != len(groups) {
		t.Fatalf("expected %d results, got %d", len(groups), len(collected))
	}
	for i, r := range collected {
		if r.LogGroup != groups[i] {
			t.Fatalf("result %d out of order: expected %q, got %q", i, groups[i], r.LogGroup)
		}
	}
}

func TestCollect_ErrorPropagates(t *testing.T) {
	be := &mockBackend{
		resultsErrs: map[string]error{queryID("/bad"): errors.New("query expired")},
	}
	s := newCollectSearcher(be, testOptions())

	_, err := s.collect(context.Background(), []model.QueryHandle{liveHandle("/bad")})
	if err == nil {
		t.Fatal("expected error from GetResults to propagate")
	}
}

func TestCollect_AllInert(t *testing.T) {
	be := &mockBackend{}
	s := newCollectSearcher(be, testOptions())

	results, err := s.collect(context.Background(), []model.QueryHandle{{LogGroup: "/a"}, {LogGroup: "/b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %v", results)
	}
	if len(be.resultCalls) != 0 {
		t.Fatalf("expected no GetResults calls, got %v", be.resultCalls)
	}
}
