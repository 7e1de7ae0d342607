package controllers

import (
	"context"
	"kinstore/internal/providers"
	"kinstore/internal/storage"
	"kinstore/internal/structures"
	"kinstore/internal/testutil"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

// --- helpers ---

func newTestStore(t *testing.T) (storage.StoreInterface, *structures.Config) {
	t.Helper()
	conf := testutil.Config(t.TempDir())
	store := storage.NewStore(storage.NewFileBackend(conf.Storage), &mockLogger{}, testutil.NewMockMetrics(), testutil.NoopTracing{})
	return store, conf
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
