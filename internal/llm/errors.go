package llm

import (
	"fmt"
)

// ErrInvalidCredentials indicates a missing, invalid or expired API key.
// Never retried.
type ErrInvalidCredentials struct {
	Err error
}

func (e *ErrInvalidCredentials) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid API credentials: %v", e.Err)
	}
	return "invalid API credentials"
}

func (e *ErrInvalidCredentials) Unwrap() error { return e.Err }

// UserMessage returns the candidate-facing cause.
func (e *ErrInvalidCredentials) UserMessage() string {
	return "Clé API OpenAI invalide ou manquante. Vérifiez votre clé dans le fichier .env"
}

// ErrRateLimited indicates the provider returned a rate limit error (429).
type ErrRateLimited struct {
	Err error
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimited) Unwrap() error { return e.Err }

// UserMessage returns the candidate-facing cause.
func (e *ErrRateLimited) UserMessage() string {
	return "Limite de taux dépassée. Veuillez réessayer dans quelques instants."
}

// ErrMalformedRequest indicates the upstream API rejected the request (400).
// Never retried.
type ErrMalformedRequest struct {
	Err error
}

func (e *ErrMalformedRequest) Error() string {
	return fmt.Sprintf("malformed request: %v", e.Err)
}

func (e *ErrMalformedRequest) Unwrap() error { return e.Err }

// UserMessage returns the candidate-facing cause.
func (e *ErrMalformedRequest) UserMessage() string {
	return fmt.Sprintf("Requête invalide: %v", e.Err)
}

// ErrUnavailable indicates a generic transport or server fault.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion provider unavailable: %v", e.Err)
	}
	return "completion provider unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// UserMessage returns the candidate-facing cause.
func (e *ErrUnavailable) UserMessage() string {
	return "Le service de génération est indisponible. Veuillez réessayer."
}

// UserFacing is implemented by all provider errors; it yields the
// human-readable cause shown to the candidate.
type UserFacing interface {
	UserMessage() string
}
