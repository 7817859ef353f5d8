package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/TimurManjosov/bfhl/internal/answer"
	"github.com/TimurManjosov/bfhl/internal/mathops"
	"github.com/TimurManjosov/bfhl/internal/telemetry"
)

// MsgLCMOverflow is returned when an lcm result does not fit in 64 bits.
const MsgLCMOverflow = "lcm result exceeds the 64-bit integer range"

// Resolver answers AI questions. *answer.Resolver satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, question string) answer.Answer
}

// Dispatcher runs validated requests against the numeric kernels and the
// answer resolver. It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	resolver Resolver
	logger   zerolog.Logger
}

// New creates a Dispatcher.
func New(resolver Resolver, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		resolver: resolver,
		logger:   logger.With().Str("component", "dispatch").Logger(),
	}
}

// Handle parses body, dispatches it, and records the outcome.
// The error is a *ValidationError for client mistakes; anything else is a
// server error whose detail must not reach the client.
func (d *Dispatcher) Handle(ctx context.Context, body map[string]any) (any, error) {
	ctx, span := otel.Tracer("bfhl/dispatch").Start(ctx, "dispatch.Handle")
	defer span.End()

	req, err := Parse(body)
	if err != nil {
		telemetry.Operations.WithLabelValues("none", "invalid").Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("bfhl.operation", string(req.Kind)))

	data, err := d.Dispatch(ctx, req)

	var vErr *ValidationError
	switch {
	case err == nil:
		telemetry.Operations.WithLabelValues(string(req.Kind), "ok").Inc()
	case errors.As(err, &vErr):
		telemetry.Operations.WithLabelValues(string(req.Kind), "invalid").Inc()
		span.SetStatus(codes.Error, vErr.Message)
	default:
		telemetry.Operations.WithLabelValues(string(req.Kind), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
	}
	return data, err
}

// Dispatch runs req. A panic inside an operation is converted to an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", req.Kind, r)
		}
	}()

	switch req.Kind {
	case KindFibonacci:
		return mathops.Fibonacci(req.Count), nil

	case KindPrime:
		return mathops.FilterPrimes(req.Numbers), nil

	case KindHCF:
		return mathops.HCF(req.Numbers), nil

	case KindLCM:
		l, err := mathops.LCMOf(req.Numbers)
		switch {
		case errors.Is(err, mathops.ErrOverflow):
			return nil, invalid(string(KindLCM), MsgLCMOverflow)
		case errors.Is(err, mathops.ErrZeroOperand):
			return nil, invalid(string(KindLCM), "lcm cannot be calculated with zero")
		case err != nil:
			return nil, fmt.Errorf("lcm: %w", err)
		}
		return l, nil

	case KindAI:
		if d.resolver == nil {
			return nil, errors.New("AI: no resolver configured")
		}
		ans := d.resolver.Resolve(ctx, req.Question)
		d.logger.Debug().Str("source", string(ans.Source)).Msg("AI question answered")
		return ans.Text, nil

	default:
		return nil, fmt.Errorf("unsupported operation %q", req.Kind)
	}
}
