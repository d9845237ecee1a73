package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/catalog"
	"github.com/opsfloor/opevents/pkg/domain/model"
	"github.com/opsfloor/opevents/pkg/usecase"
	"github.com/opsfloor/opevents/pkg/utils/errutil"
	"github.com/opsfloor/opevents/pkg/utils/logging"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(ctx).Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error  string         `json:"error"`
	Values map[string]any `json:"values,omitempty"`
}

// respondError maps domain errors to HTTP status codes and always names the
// offending field or rule so the UI can show a precise message.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError

	switch {
	case errors.Is(err, usecase.ErrEventNotFound),
		errors.Is(err, catalog.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, usecase.ErrIllegalTransition),
		errors.Is(err, usecase.ErrRecordLocked),
		errors.Is(err, catalog.ErrDuplicateEntry):
		statusCode = http.StatusConflict
	case errors.Is(err, usecase.ErrStorageUnavailable):
		statusCode = http.StatusServiceUnavailable
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrMissingRequired),
		errors.Is(err, model.ErrFieldTooLong),
		errors.Is(err, model.ErrInvalidImpactType),
		errors.Is(err, model.ErrInvalidCause),
		errors.Is(err, model.ErrInvalidClosureState),
		errors.Is(err, model.ErrMissingCloseDate),
		errors.Is(err, catalog.ErrEmptyLabel):
		statusCode = http.StatusBadRequest
	}

	if statusCode >= http.StatusInternalServerError {
		_ = errutil.Handle(ctx, err, "request failed")
	}

	body := errorResponse{Error: err.Error()}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		body.Values = ge.Values()
	}

	respondJSON(ctx, w, statusCode, body)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(model.ErrValidation, "invalid request body",
			goerr.V("cause", err.Error()))
	}
	return nil
}
