package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/plumeworks/plume/pkg/apierr"
)

// graphqlRequest is the standard POST body: query plus optional variables
// and operation name.
type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler serves POST /graphql. Transport-level failures (unreadable body)
// answer with the REST error envelope; everything past parsing is reported
// inside the GraphQL result, errors included, with status 200.
func (s *Schema) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apierr.InvalidRequestBody())
			return
		}

		result := s.Do(r.Context(), req.Query, req.Variables, req.OperationName)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(result); err != nil && s.logger != nil {
			s.logger.Error("encode graphql response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, apiErr *apierr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status())
	_ = json.NewEncoder(w).Encode(apiErr.Response())
}
