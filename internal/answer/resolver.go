// Package answer resolves free-text questions to single-word answers.
//
// A Resolver asks a live Generator first and falls back to a fixed keyword
// table when the generator is missing, fails, times out or returns nothing
// usable. Resolve never fails.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/TimurManjosov/bfhl/internal/telemetry"
)

// DefaultTimeout bounds a single generator call when none is configured.
const DefaultTimeout = 5 * time.Second

const promptTemplate = "Answer the following question in exactly ONE WORD only. " +
	"No explanations, no punctuation, just the single word answer.\n\nQuestion: %s"

var (
	// ErrNotConfigured is reported when no live generator is available.
	ErrNotConfigured = errors.New("answer generator not configured")
	// ErrEmptyAnswer is reported when the generator reply has no usable word.
	ErrEmptyAnswer = errors.New("generator returned no usable word")
)

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source records which path produced an Answer.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Answer is a single-word answer and the path that produced it.
type Answer struct {
	Text   string
	Source Source
}

// Resolver turns questions into one-word answers.
type Resolver struct {
	gen     Generator
	timeout time.Duration
	logger  zerolog.Logger
}

// NewResolver creates a Resolver. gen may be nil, in which case every
// question is answered from the fallback table.
func NewResolver(gen Generator, timeout time.Duration, logger zerolog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		gen:     gen,
		timeout: timeout,
		logger:  logger.With().Str("component", "answer").Logger(),
	}
}

// Live reports whether a live generator is configured.
func (r *Resolver) Live() bool {
	return r.gen != nil
}

// Resolve answers question in a single word.
func (r *Resolver) Resolve(ctx context.Context, question string) Answer {
	ctx, span := otel.Tracer("bfhl/answer").Start(ctx, "answer.Resolve")
	defer span.End()

	word, err := r.ask(ctx, question)
	if err == nil {
		span.SetAttributes(attribute.String("answer.source", string(SourceLive)))
		telemetry.AIAnswers.WithLabelValues(string(SourceLive)).Inc()
		return Answer{Text: word, Source: SourceLive}
	}

	if !errors.Is(err, ErrNotConfigured) {
		r.logger.Warn().Err(err).Msg("live answer failed, using fallback")
	}
	span.SetAttributes(attribute.String("answer.source", string(SourceFallback)))
	telemetry.AIAnswers.WithLabelValues(string(SourceFallback)).Inc()
	return Answer{Text: Fallback(question), Source: SourceFallback}
}

func (r *Resolver) ask(ctx context.Context, question string) (string, error) {
	if r.gen == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.gen.Generate(ctx, fmt.Sprintf(promptTemplate, question))
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	word := FirstWord(reply)
	if word == "" {
		return "", ErrEmptyAnswer
	}
	return word, nil
}

// FirstWord returns the first whitespace-delimited token of reply with
// sentence punctuation (.,!?;:) removed.
func FirstWord(reply string) string {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:", r) {
			return -1
		}
		return r
	}, fields[0])
}
