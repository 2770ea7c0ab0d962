// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tankobon/internal/api"
	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/internal/platform/config"
	"github.com/taibuivan/tankobon/internal/premium"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	logger := quietLogger()
	store, err := catalog.LoadStore(context.Background(), catalog.EmbeddedSource{}, logger)
	require.NoError(t, err)

	service := catalog.NewService(store, catalog.NewMemorySessionStore(time.Now), catalog.ServiceConfig{
		Locale:     "pt-BR",
		PageSize:   12,
		SessionTTL: time.Minute,
	}, logger)

	if deps.CatalogTitles == nil {
		deps.CatalogTitles = store.Len
	}
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		ServerPort:          "0",
		Environment:         "test",
		AllowedOriginSuffix: "tankobon.app",
		MetricsEnabled:      true,
	}

	server := api.NewServer(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(service, nil),
		Premium:   premium.NewHandler(),
	})
	return server.Handler()
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

type readiness struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			IsOK  bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"checks"`
	} `json:"data"`
}

func TestLiveness(t *testing.T) {
	recorder := get(t, newServer(t, api.HealthDependencies{}), "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}

func TestReadiness_SkipsUnusedDependencies(t *testing.T) {
	recorder := get(t, newServer(t, api.HealthDependencies{}), "/ready")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body readiness
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "ready", body.Data.Status)
	require.Len(t, body.Data.Checks, 1)
	assert.Equal(t, "catalog", body.Data.Checks[0].Name)
}

func TestReadiness_Degraded(t *testing.T) {
	server := newServer(t, api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return errors.New("redis: ping failed") },
	})

	recorder := get(t, server, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body readiness
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 3)
	assert.True(t, body.Data.Checks[0].IsOK)
	assert.False(t, body.Data.Checks[1].IsOK)
	assert.Equal(t, "redis: ping failed", body.Data.Checks[1].Error)
}

func TestReadiness_EmptyCatalogue(t *testing.T) {
	server := newServer(t, api.HealthDependencies{CatalogTitles: func() int { return 0 }})

	recorder := get(t, server, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestRoutes_Mounted(t *testing.T) {
	server := newServer(t, api.HealthDependencies{})

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/catalog", http.StatusOK},
		{"/api/v1/catalog/categories", http.StatusOK},
		{"/api/v1/titles/jojolands", http.StatusOK},
		{"/api/v1/titles/no-such-title", http.StatusNotFound},
		{"/api/v1/plans", http.StatusOK},
		{"/api/v1/plans/premium", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v2/catalog", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorder := get(t, server, tt.path)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestRoutes_RequestIDHeader(t *testing.T) {
	recorder := get(t, newServer(t, api.HealthDependencies{}), "/api/v1/catalog")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}
