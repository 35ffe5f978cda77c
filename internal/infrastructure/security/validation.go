// Package security provides input validation for screen commands and requests
package security

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/chefaid/chefaid/internal/domain/prompt"
	apperrors "github.com/chefaid/chefaid/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes bounds request bodies; fridge photos are the largest payload
const DefaultMaxBodyBytes = 10 * 1024 * 1024

// ValidationService provides command validation
type ValidationService struct {
	logger    *zap.Logger
	validator *validator.Validate
}

// NewValidationService creates a new validation service
func NewValidationService(logger *zap.Logger) *ValidationService {
	validate := validator.New()

	// Register catalog rules
	validate.RegisterValidation("meal_type", catalogRule(prompt.MealTypes))
	validate.RegisterValidation("cuisine", catalogRule(prompt.Cuisines))
	validate.RegisterValidation("vibe", catalogRule(prompt.Vibes))
	validate.RegisterValidation("plan_meal", catalogRule(prompt.PlanMeals))
	validate.RegisterValidation("timeframe", catalogRule(prompt.Timeframes))
	validate.RegisterValidation("diet_goal", catalogRule(prompt.DietGoals))

	return &ValidationService{
		logger:    logger.Named("validation"),
		validator: validate,
	}
}

// catalogRule accepts only values from the given option list
func catalogRule(options []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(options, fl.Field().String())
	}
}

// ValidateStruct validates a struct and converts failures into an AppError
func (v *ValidationService) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.NewValidationError(err.Error())
	}

	fields := make([]apperrors.ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperrors.ValidationError{
			Field:   e.Field(),
			Value:   e.Value(),
			Tag:     e.Tag(),
			Message: fieldMessage(e),
		})
	}

	v.logger.Debug("Command validation failed", zap.Int("fields", len(fields)))
	return apperrors.NewValidationErrors(fields)
}

// fieldMessage formats a single validation failure for API responses
func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %s", field, e.Param())
	case "meal_type":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(prompt.MealTypes, ", "))
	case "cuisine":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(prompt.Cuisines, ", "))
	case "vibe":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(prompt.Vibes, ", "))
	case "plan_meal":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(prompt.PlanMeals, ", "))
	case "timeframe":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(prompt.Timeframes, ", "))
	case "diet_goal":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(prompt.DietGoals, ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidationMiddleware rejects requests with an unsupported content type or
// an oversized body before they reach a handler
func (v *ValidationService) ValidationMiddleware(maxBodyBytes int64) gin.HandlerFunc {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	validTypes := []string{
		"application/json",
		"multipart/form-data",
		"text/plain",
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			contentType := c.GetHeader("Content-Type")
			valid := slices.ContainsFunc(validTypes, func(t string) bool {
				return strings.Contains(contentType, t)
			})
			if !valid {
				c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, apperrors.ToErrorResponse(
					apperrors.NewBadRequestError("Unsupported content type"), c.GetString("request_id")))
				return
			}
		}

		if c.Request.ContentLength > maxBodyBytes {
			v.logger.Warn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, apperrors.ToErrorResponse(
				apperrors.NewBadRequestError("Request too large"), c.GetString("request_id")))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}

		c.Next()
	}
}
