package generation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/heartmarshall/flashgen-backend/internal/provider"
)

// Code classifies a generation failure for the HTTP layer.
type Code string

const (
	CodeAIError         Code = "AI_ERROR"
	CodeDatabaseError   Code = "DATABASE_ERROR"
	CodeValidationError Code = "VALIDATION_ERROR"
)

// AICode narrows an AI_ERROR down to the provider failure kind.
type AICode string

const (
	AIConfigurationError AICode = "AI_CONFIGURATION_ERROR"
	AIRateLimited        AICode = "AI_RATE_LIMITED"
	AIServiceError       AICode = "AI_SERVICE_ERROR"
	AITimeout            AICode = "AI_TIMEOUT"
	AIInvalidResponse    AICode = "AI_INVALID_RESPONSE"
)

// Error is the only error type returned by Service.Create.
// Status is the HTTP status the failure should be reported with.
type Error struct {
	Code    Code
	AICode  AICode
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.AICode != "" {
		return fmt.Sprintf("generation: %s/%s: %s", e.Code, e.AICode, e.Message)
	}
	return fmt.Sprintf("generation: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

var (
	errNoProposals      = errors.New("AI returned no flashcards")
	errInvalidProposals = errors.New("AI returned invalid flashcard format")
)

// classifyAI maps a provider failure to an AI code, HTTP status and a
// message safe to show to the caller.
func classifyAI(err error) (AICode, int, string) {
	var (
		cfgErr    *provider.ConfigurationError
		apiErr    *provider.APIError
		netErr    *provider.NetworkError
		jsonErr   *provider.InvalidResponseJSONError
		schemaErr *provider.SchemaValidationError
	)

	switch {
	case errors.As(err, &cfgErr):
		return AIConfigurationError, http.StatusInternalServerError, "AI service is not configured"
	case errors.Is(err, provider.ErrUnavailable):
		return AIServiceError, http.StatusServiceUnavailable, "AI service is temporarily unavailable"
	case errors.As(err, &apiErr):
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return AIRateLimited, http.StatusTooManyRequests, "AI service rate limit exceeded, please try again later"
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return AIServiceError, http.StatusServiceUnavailable, "AI service rejected the configured credentials"
		case apiErr.StatusCode >= 500:
			return AIServiceError, http.StatusServiceUnavailable, "AI service is temporarily unavailable"
		default:
			return AIServiceError, http.StatusBadGateway, "AI service rejected the request"
		}
	case errors.As(err, &netErr):
		return AITimeout, http.StatusGatewayTimeout, "AI service did not respond in time"
	case errors.Is(err, errNoProposals), errors.Is(err, errInvalidProposals):
		return AIInvalidResponse, http.StatusUnprocessableEntity, err.Error()
	case errors.As(err, &jsonErr), errors.As(err, &schemaErr):
		return AIInvalidResponse, http.StatusUnprocessableEntity, "AI returned an invalid response"
	default:
		return AIServiceError, http.StatusInternalServerError, "Unknown AI service error"
	}
}
