// Package dispatch selects, validates and runs the single operation carried
// by a /bfhl request body.
package dispatch

import (
	"strings"

	"github.com/TimurManjosov/bfhl/internal/mathops"
	"github.com/TimurManjosov/bfhl/internal/validation"
)

// Kind identifies one of the supported operations. Values are the request keys.
type Kind string

const (
	KindFibonacci Kind = "fibonacci"
	KindPrime     Kind = "prime"
	KindLCM       Kind = "lcm"
	KindHCF       Kind = "hcf"
	KindAI        Kind = "AI"
)

// Kinds lists the recognized request keys in canonical order.
var Kinds = []Kind{KindFibonacci, KindPrime, KindLCM, KindHCF, KindAI}

// Validation messages returned to clients.
const (
	MsgInvalidBody  = "Invalid request body"
	MsgMultipleKeys = "Only one key allowed per request"
)

// MsgNoValidKey is returned when none of Kinds is present in the body.
var MsgNoValidKey = "No valid key provided. Expected one of: " + kindList()

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Request is a validated operation. Only the field matching Kind is set:
// Count for fibonacci, Numbers for prime/lcm/hcf, Question for AI.
type Request struct {
	Kind     Kind
	Count    int
	Numbers  []int64
	Question string
}

// ValidationError reports a request that does not satisfy an operation's
// input contract. Message is safe to return to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func fromResult(r *validation.ValidationResult) *ValidationError {
	return invalid(r.Field, r.Message)
}

// Parse turns a decoded JSON object into a Request.
// Unrecognized keys are ignored but exactly one recognized key must be present.
// All failures are *ValidationError.
func Parse(body map[string]any) (Request, error) {
	if len(body) == 0 {
		return Request{}, invalid("", MsgInvalidBody)
	}

	var (
		kind  Kind
		found int
	)
	for _, k := range Kinds {
		if _, ok := body[string(k)]; ok {
			kind = k
			found++
		}
	}
	switch {
	case found == 0:
		return Request{}, invalid("", MsgNoValidKey)
	case found > 1:
		return Request{}, invalid("", MsgMultipleKeys)
	}

	field := string(kind)
	value := body[field]

	switch kind {
	case KindFibonacci:
		n, result := validation.ValidateCount(field, value, mathops.MaxFibonacciTerms)
		if !result.Valid {
			return Request{}, fromResult(result)
		}
		return Request{Kind: kind, Count: n}, nil

	case KindPrime, KindHCF:
		nums, result := validation.ValidateIntegers(field, value)
		if !result.Valid {
			return Request{}, fromResult(result)
		}
		return Request{Kind: kind, Numbers: nums}, nil

	case KindLCM:
		nums, result := validation.ValidateIntegers(field, value)
		if !result.Valid {
			return Request{}, fromResult(result)
		}
		if result := validation.ValidateNonZero(field, nums); !result.Valid {
			return Request{}, fromResult(result)
		}
		return Request{Kind: kind, Numbers: nums}, nil

	default: // KindAI
		q, result := validation.ValidateQuestion(field, value)
		if !result.Valid {
			return Request{}, fromResult(result)
		}
		return Request{Kind: kind, Question: q}, nil
	}
}
