package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shopql/internal/middleware"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(graphql http.Handler) http.Handler {
	return New(graphql, Options{
		GraphQLPath: "/graphql",
		CORS: middleware.CORSOptions{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
		},
	}, zerolog.Nop())
}

func TestRouter(t *testing.T) {
	graphqlCalled := false
	graphql := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		graphqlCalled = true
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectGraphQL  bool
	}{
		{
			name:           "Health check",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "GraphQL endpoint",
			method:         http.MethodPost,
			path:           "/graphql",
			expectedStatus: http.StatusOK,
			expectGraphQL:  true,
		},
		{
			name:           "Unknown path",
			method:         http.MethodGet,
			path:           "/api/products",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graphqlCalled = false
			handler := newTestRouter(graphql)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectGraphQL, graphqlCalled)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_RecoversFromHandlerPanic(t *testing.T) {
	graphql := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := newTestRouter(graphql)

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
