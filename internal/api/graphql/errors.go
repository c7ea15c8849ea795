package graphql

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/plumeworks/plume/pkg/apierr"
)

// resolverError carries an apierr through graphql-go's error formatting so
// the machine-readable code lands in the response extensions. The wrapped
// cause is never serialized.
type resolverError struct {
	apiErr *apierr.Error
}

func (e resolverError) Error() string { return e.apiErr.Error() }

func (e resolverError) Code() apierr.Code { return e.apiErr.Code() }

func (e resolverError) Status() int { return e.apiErr.Status() }

func (e resolverError) Extensions() map[string]any {
	return map[string]any{
		"code":   string(e.apiErr.Code()),
		"status": e.apiErr.Status(),
	}
}

// fail converts any resolver failure into a resolverError, logging server
// faults. Client errors (4xx) pass through silently.
func (s *Schema) fail(err error) error {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		apiErr = apierr.InternalError(err)
	}
	if apiErr.Status() >= http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("graphql resolver failed",
			slog.String("code", string(apiErr.Code())),
			slog.String("error", apiErr.Error()))
	}
	return resolverError{apiErr: apiErr}
}
