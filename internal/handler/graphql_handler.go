package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shopql/internal/model"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps the size of a GraphQL request body.
const maxBodyBytes = 1 << 20

// graphQLRequest is the JSON body of a GraphQL-over-HTTP request.
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler serves queries and mutations against a schema.
type GraphQLHandler struct {
	schema   *graphql.Schema
	graphiql bool
	logger   zerolog.Logger
}

// NewGraphQLHandler creates a new GraphQL handler. When graphiql is set, browsers
// requesting the endpoint without a query get the GraphiQL explorer.
func NewGraphQLHandler(schema *graphql.Schema, graphiql bool, logger zerolog.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema:   schema,
		graphiql: graphiql,
		logger:   logger.With().Str("handler", "graphql").Logger(),
	}
}

// ServeHTTP handles GET and POST requests to the GraphQL endpoint.
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	var req graphQLRequest
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		if q.Get("query") == "" && h.graphiql && acceptsHTML(r) {
			serveGraphiQL(w, r.URL.Path)
			return
		}

		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if vars := q.Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "variables must be a JSON object", logger)
				return
			}
		}

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			message := "invalid request body"
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				message = "request body too large"
			}
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, message, logger)
			return
		}

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", logger)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "query is required", logger)
		return
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	if len(resp.Errors) > 0 {
		logger.Debug().
			Str("operation", req.OperationName).
			Int("error_count", len(resp.Errors)).
			Str("first_error", resp.Errors[0].Message).
			Msg("graphql request completed with errors")
	}

	writeJSON(w, http.StatusOK, resp)
}

// requestLogger returns the request-scoped logger when middleware attached one.
func (h *GraphQLHandler) requestLogger(r *http.Request) zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l.With().Str("handler", "graphql").Logger()
	}
	return h.logger
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
