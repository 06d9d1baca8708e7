package router

import (
	"net/http"

	"shopql/internal/middleware"

	"github.com/rs/zerolog"
)

// Options configures the router.
type Options struct {
	GraphQLPath string
	CORS        middleware.CORSOptions
}

// New creates a new HTTP router with all routes and middleware configured.
func New(graphqlHandler http.Handler, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle(opts.GraphQLPath, graphqlHandler)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(opts.CORS)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
