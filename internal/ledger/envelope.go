package ledger

import (
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// Envelope is the response shape returned to callers outside the process:
// {success, value} on success and {success, error} on failure.
type Envelope[T any] struct {
	Success bool           `json:"success" yaml:"success"`
	Value   *T             `json:"value,omitempty" yaml:"value,omitempty"`
	Error   *EnvelopeError `json:"error,omitempty" yaml:"error,omitempty"`
}

// EnvelopeError carries the numeric code of a failure.
type EnvelopeError struct {
	Code    int    `json:"code" yaml:"code"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Respond wraps the result of a ledger call. A nil error yields a successful
// envelope; otherwise the error is mapped onto its code and value is dropped.
func Respond[T any](value T, err error) Envelope[T] {
	if err != nil {
		return Envelope[T]{Error: NewEnvelopeError(err)}
	}
	return Envelope[T]{Success: true, Value: &value}
}

// NewEnvelopeError maps err onto its code. Errors without a ledger kind map to 500.
func NewEnvelopeError(err error) *EnvelopeError {
	envErr := &EnvelopeError{
		Code:    domain.StatusCode(err),
		Message: err.Error(),
	}
	if kind, ok := domain.KindOf(err); ok {
		envErr.Kind = kind.String()
	}
	return envErr
}
