package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"repo-stats-admin/internal/http/handlers"

	"github.com/stretchr/testify/assert"
)

func TestHealthcheck(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.Healthcheck()(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
