// ABOUTME: Maps domain and decoding errors to HTTP status codes and messages.
// ABOUTME: Unexpected errors are logged in full and reported as a generic 500.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/harperreed/moodrun/internal/models"
	"github.com/harperreed/moodrun/internal/tracker"
)

const (
	msgInvalidJSON = "Invalid JSON body"
	msgInvalidID   = "Invalid id"
	msgInternal    = "Internal server error"
)

// statusFor returns the status code and caller-safe message for err.
func statusFor(err error) (int, string) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}
	var nf *tracker.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, nf.Error()
	}
	return http.StatusInternalServerError, msgInternal
}

// writeError writes err as a JSON error body.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.Error(err),
			zap.String("request_id", requestID(c)),
		)
	}
	c.JSON(status, errorBody{Error: msg})
}

// bindError converts a gin binding failure into a validation error.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return models.MissingField(fe.Field())
		}
		return models.InvalidField(fe.Field(), "is invalid")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.InvalidField(typeErr.Field, "must be "+jsonKind(typeErr.Type))
	}

	return &models.ValidationError{Kind: models.ErrInvalidField, Message: msgInvalidJSON}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	default:
		return "valid"
	}
}
