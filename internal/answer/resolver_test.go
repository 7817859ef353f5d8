package answer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubGenerator struct {
	reply  string
	err    error
	delay  time.Duration
	prompt string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.reply, g.err
}

func TestFallback(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What is the capital of Maharashtra?", "Mumbai"},
		{"What is the capital of India?", "Delhi"},
		{"Capital city of INDIA", "Delhi"},
		{"What is the capital of France?", "Paris"},
		{"what's japan's capital", "Tokyo"},
		{"What is 2+2?", "4"},
		{"what is 2 + 2", "4"},
		{"What color is the sky?", "Blue"},
		{"What colour is grass?", "Green"},
		{"Tell me about the sky", "Unknown"},
		{"Who wrote Hamlet?", "Unknown"},
	}

	for _, tt := range tests {
		if got := Fallback(tt.question); got != tt.want {
			t.Errorf("Fallback(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestFallback_MaharashtraBeforeIndia(t *testing.T) {
	// both rules match; the more specific one is listed first
	if got := Fallback("capital of maharashtra, india"); got != "Mumbai" {
		t.Errorf("Expected Mumbai, got %q", got)
	}
}

func TestFirstWord(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{"Paris", "Paris"},
		{"  Paris.\n", "Paris"},
		{"Paris is the capital", "Paris"},
		{"Yes!", "Yes"},
		{"U.S.A.", "USA"},
		{"", ""},
		{"   ", ""},
		{"...", ""},
	}

	for _, tt := range tests {
		if got := FirstWord(tt.reply); got != tt.want {
			t.Errorf("FirstWord(%q) = %q, want %q", tt.reply, got, tt.want)
		}
	}
}

func TestResolve_Live(t *testing.T) {
	gen := &stubGenerator{reply: "Paris. It is the capital."}
	r := NewResolver(gen, time.Second, zerolog.Nop())

	got := r.Resolve(context.Background(), "What is the capital of France?")
	if got.Text != "Paris" {
		t.Errorf("Expected 'Paris', got %q", got.Text)
	}
	if got.Source != SourceLive {
		t.Errorf("Expected live source, got %s", got.Source)
	}
	if !strings.Contains(gen.prompt, "exactly ONE WORD") || !strings.HasSuffix(gen.prompt, "Question: What is the capital of France?") {
		t.Errorf("Unexpected prompt: %q", gen.prompt)
	}
}

func TestResolve_NotConfigured(t *testing.T) {
	r := NewResolver(nil, time.Second, zerolog.Nop())
	if r.Live() {
		t.Error("Expected Live() to be false without a generator")
	}

	got := r.Resolve(context.Background(), "What is the capital of France?")
	if got.Text != "Paris" || got.Source != SourceFallback {
		t.Errorf("Expected Paris from fallback, got %+v", got)
	}
}

func TestResolve_GeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("service unavailable")}
	r := NewResolver(gen, time.Second, zerolog.Nop())

	got := r.Resolve(context.Background(), "What color is the sky?")
	if got.Text != "Blue" || got.Source != SourceFallback {
		t.Errorf("Expected Blue from fallback, got %+v", got)
	}
}

func TestResolve_EmptyReply(t *testing.T) {
	gen := &stubGenerator{reply: " ?! "}
	r := NewResolver(gen, time.Second, zerolog.Nop())

	got := r.Resolve(context.Background(), "Who wrote Hamlet?")
	if got.Text != DefaultAnswer || got.Source != SourceFallback {
		t.Errorf("Expected default fallback answer, got %+v", got)
	}
}

func TestResolve_Timeout(t *testing.T) {
	gen := &stubGenerator{reply: "Rome", delay: time.Second}
	r := NewResolver(gen, 20*time.Millisecond, zerolog.Nop())

	start := time.Now()
	got := r.Resolve(context.Background(), "What is the capital of Japan?")
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Resolve took %v, expected the timeout to cut it short", elapsed)
	}
	if got.Text != "Tokyo" || got.Source != SourceFallback {
		t.Errorf("Expected Tokyo from fallback, got %+v", got)
	}
}

func TestResolve_CancelledContext(t *testing.T) {
	gen := &stubGenerator{reply: "Rome", delay: time.Second}
	r := NewResolver(gen, time.Minute, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := r.Resolve(ctx, "2+2")
	if got.Text != "4" || got.Source != SourceFallback {
		t.Errorf("Expected 4 from fallback, got %+v", got)
	}
}

func TestNewResolver_DefaultTimeout(t *testing.T) {
	r := NewResolver(nil, 0, zerolog.Nop())
	if r.timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, r.timeout)
	}
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	if _, err := NewGeminiGenerator(context.Background(), "", ""); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestGeminiGenerator_Name(t *testing.T) {
	gen, err := NewGeminiGenerator(context.Background(), "test-key", "")
	if err != nil {
		t.Fatalf("NewGeminiGenerator failed: %v", err)
	}
	if got := gen.Name(); got != "genai:"+DefaultModel {
		t.Errorf("Expected name %q, got %q", "genai:"+DefaultModel, got)
	}
}
