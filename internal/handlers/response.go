package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorlib "github.com/go-playground/validator/v10"

	"budgetwise/internal/config"
	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/logger"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// respondSuccess writes a success envelope with the given status code.
func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// respondWithError writes a consistent error envelope. AppErrors keep their
// status, message, and field details. Anything else becomes a generic 500;
// the underlying exception is exposed only in debug mode.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		body := Response{Success: false, Message: appErr.Message, Errors: appErr.Errors}
		if appErr.StatusCode == http.StatusInternalServerError && appErr.Internal != nil && config.Get().Debug {
			body.Errors = gin.H{"exception": appErr.Internal.Error()}
		}
		c.JSON(appErr.StatusCode, body)
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	body := Response{Success: false, Message: apperrors.ErrInternalServer.Message}
	if config.Get().Debug {
		body.Errors = gin.H{"exception": err.Error()}
	}
	c.JSON(http.StatusInternalServerError, body)
}

// bindingError converts a gin binding failure into a 422 validation error
// with a field→messages map, or a 400 for malformed payloads.
func bindingError(err error) error {
	var verrs validatorlib.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], validationMessage(fe))
		}
		return apperrors.WithErrors(apperrors.ErrValidation, fields)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// validationMessage renders a short human-readable message for one failed
// validation tag.
func validationMessage(fe validatorlib.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "eqfield":
		return "Must match " + fe.Param()
	case "iso4217":
		return "Must be a valid ISO 4217 currency code"
	case "category_type":
		return "Must be one of: expense, income, savings"
	case "budget_month":
		return "Must be the first day of a month (YYYY-MM-01)"
	case "trend_period":
		return "Must be one of: 6months, 1year, 2years"
	case "gt":
		return "Must be greater than " + fe.Param()
	default:
		return "Invalid value"
	}
}
