// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tankobon/internal/platform/constants"
	"github.com/taibuivan/tankobon/internal/platform/ctxutil"
	"github.com/taibuivan/tankobon/internal/platform/middleware"
	"github.com/taibuivan/tankobon/pkg/uuid"
)

type stubConfig struct{ development bool }

func (c stubConfig) IsDevelopment() bool { return c.development }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	t.Run("generates a UUID", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, uuid.Valid(seen))
		assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
	})

	t.Run("keeps the client ID", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRequestID, "req-42")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", recorder.Header().Get(constants.HeaderXRequestID))
	})
}

func TestStructuredLogger_InjectsLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	var injected *slog.Logger
	handler := middleware.StructuredLogger(base)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		injected = ctxutil.GetLogger(request.Context())
		writer.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, injected)
	assert.NotSame(t, base, injected)
	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Buckets are per IP
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestRateLimiter_Handler(t *testing.T) {
	handler := middleware.NewRateLimiter(1, 1).Handler(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRealIP, "203.0.113.9")

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, request)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, request)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}

func TestRateLimit_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	handler := middleware.RateLimit(ctx)(okHandler)
	cancel()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		origin      string
		wantAllowed bool
	}{
		{"production matching suffix", false, "https://www.tankobon.app", true},
		{"production foreign origin", false, "https://evil.example", false},
		{"development allows any origin", true, "http://localhost:5173", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(stubConfig{development: tt.development}, "tankobon.app")(okHandler)

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.wantAllowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := middleware.CORS(stubConfig{}, "tankobon.app")(okHandler)

	request := httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://tankobon.app")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestMetrics_PassesThrough(t *testing.T) {
	router := chi.NewRouter()
	router.Use(middleware.Metrics())
	router.Get("/titles/{slug}", okHandler)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/titles/blue-lock", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "203.0.113.5")
	assert.Equal(t, "203.0.113.5", middleware.RealIP(request))
}
