// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
	"github.com/taibuivan/tankobon/internal/platform/respond"
	"github.com/taibuivan/tankobon/pkg/pagination"
)

func TestOK_WrapsData(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"slug": "blue-lock"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"slug":"blue-lock"}}`, recorder.Body.String())
}

func TestAccepted(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Accepted(recorder, map[string]string{"message": "pending"})

	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.JSONEq(t, `{"data":{"message":"pending"}}`, recorder.Body.String())
}

func TestPaginated_CarriesMeta(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []int{1, 2}, pagination.NewMeta(1, 2, 5))

	var envelope struct {
		Data []int           `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, []int{1, 2}, envelope.Data)
	assert.Equal(t, 3, envelope.Meta.TotalPages)
	assert.Equal(t, 5, envelope.Meta.Total)
}

func TestNoContent(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.NoContent(recorder)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperr.NotFound("Title"), http.StatusNotFound, "NOT_FOUND"},
		{
			"validation with details",
			apperr.ValidationError("Invalid input", apperr.FieldError{Field: "sort", Message: "Unknown sort key"}),
			http.StatusBadRequest,
			"VALIDATION_ERROR",
		},
		{"unknown error hidden", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.NotContains(t, envelope.Error, "connection reset")
		})
	}
}
