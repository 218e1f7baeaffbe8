package marketplace

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/entities"
	"github.com/light-bringer/dealmarket-service/internal/pkg/schema"
)

var (
	errMalformedBody = errors.New("malformed JSON body")
	errInvalidID     = errors.New("invalid identifier")
	errInvalidQuery  = errors.New("invalid query parameter")
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Field   string        `json:"field,omitempty"`
	Details []FieldDetail `json:"details,omitempty"`
}

// FieldDetail describes one rejected field.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// mapError converts application errors to an HTTP status and body.
func mapError(err error) (int, ErrorResponse) {
	var (
		verr *schema.ValidationError
		ferr *domain.FieldError
	)

	switch {
	case errors.As(err, &verr):
		resp := ErrorResponse{Error: "validation failed", Details: make([]FieldDetail, len(verr.Errors))}
		for i, fe := range verr.Errors {
			resp.Details[i] = FieldDetail{Field: fe.Field, Message: fe.Error()}
		}
		return http.StatusUnprocessableEntity, resp

	case errors.Is(err, errMalformedBody), errors.Is(err, errInvalidID), errors.Is(err, errInvalidQuery):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBusinessNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, entities.ErrUnknownVariant):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}

	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, ErrorResponse{Error: "duplicate value", Field: fieldOf(ferr, err)}

	case errors.Is(err, domain.ErrHasDependents):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}

	case errors.Is(err, domain.ErrConstraintViolation),
		errors.Is(err, domain.ErrReferenceNotFound),
		errors.Is(err, domain.ErrEnumMismatch):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Field: fieldOf(ferr, err)}

	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}

func fieldOf(target *domain.FieldError, err error) string {
	if errors.As(err, &target) {
		return target.Field
	}
	return ""
}

// respondError writes the mapped error. Server errors are logged with the
// request-scoped logger; client errors are not.
func respondError(c echo.Context, err error) error {
	code, body := mapError(err)
	if code >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.JSON(code, body)
}
