// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/studypath/internal/models"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
	"github.com/tomtom215/studypath/internal/testinfra"
)

// envelope mirrors models.APIResponse with Data left undecoded.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

type testServer struct {
	api     *Handler
	handler http.Handler
	model   *recommend.Handle
	repo    *store.Memory
}

type serverOption func(*HandlerConfig, *ChiMiddlewareConfig)

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	ctx := context.Background()

	cfg := recommend.DefaultConfig()
	cfg.PopulationSize = 200

	repo := store.NewMemory()
	for _, s := range store.SeedStudents() {
		if err := repo.SaveStudent(ctx, s); err != nil {
			t.Fatalf("SaveStudent() error = %v", err)
		}
	}

	model, err := recommend.NewHandle(ctx, cfg, testinfra.Catalog(t), repo, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandle() error = %v", err)
	}

	hcfg := HandlerConfig{Version: "test", Backend: "memory", RetrainMinInterval: 0}
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	for _, opt := range opts {
		opt(&hcfg, mwCfg)
	}

	h := NewHandler(model, repo, hcfg)
	return &testServer{
		api:     h,
		handler: NewRouter(h, NewChiMiddleware(mwCfg)).Setup(),
		model:   model,
		repo:    repo,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (body %q)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
}

func wantErrorCode(t *testing.T, env envelope, code string) {
	t.Helper()
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("envelope = %+v, want error %s", env, code)
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
}
