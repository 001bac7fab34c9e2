package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// GreetingInstruction is the prompt sent to the text model at startup.
const GreetingInstruction = "Greet the customer politely and ask what pizza they'd like to order."

// DefaultGreeting is shown when no text model is configured or it fails.
const DefaultGreeting = "Welcome to our pizzeria! What pizza would you like to order today?"

// Greeter produces a short greeting from an instruction.
type Greeter interface {
	Greet(ctx context.Context, instruction string) (string, error)
}

// StaticGreeter always returns its own text.
type StaticGreeter string

// Greet returns the static greeting.
func (g StaticGreeter) Greet(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(g), nil
}

// HTTPOption configures an HTTPGreeter.
type HTTPOption func(*HTTPGreeter)

// WithGreeterClient overrides the HTTP client.
func WithGreeterClient(client *http.Client) HTTPOption {
	return func(g *HTTPGreeter) {
		if client != nil {
			g.client = client
		}
	}
}

// WithGreeterToken sends token as a bearer credential.
func WithGreeterToken(token string) HTTPOption {
	return func(g *HTTPGreeter) {
		g.token = strings.TrimSpace(token)
	}
}

// WithResultPath sets the gjson path of the generated text in the response.
func WithResultPath(path string) HTTPOption {
	return func(g *HTTPGreeter) {
		if path = strings.TrimSpace(path); path != "" {
			g.resultPath = path
		}
	}
}

// WithMaxNewTokens bounds the generated greeting length.
func WithMaxNewTokens(n int) HTTPOption {
	return func(g *HTTPGreeter) {
		if n > 0 {
			g.maxNewTokens = n
		}
	}
}

// HTTPGreeter asks a text-generation endpoint for the greeting. The request
// follows the hosted inference convention: {"inputs": ..., "parameters":
// {"max_new_tokens": ...}}.
type HTTPGreeter struct {
	endpoint     string
	token        string
	resultPath   string
	maxNewTokens int
	client       *http.Client
}

var _ Greeter = (*HTTPGreeter)(nil)

// NewHTTPGreeter builds a greeter posting to endpoint.
func NewHTTPGreeter(endpoint string, options ...HTTPOption) *HTTPGreeter {
	g := &HTTPGreeter{
		endpoint:     strings.TrimSpace(endpoint),
		resultPath:   "0.generated_text",
		maxNewTokens: 50,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

// Greet posts the instruction and extracts the generated text.
func (g *HTTPGreeter) Greet(ctx context.Context, instruction string) (string, error) {
	if g.endpoint == "" {
		return "", collaboratorErr("greeter", errors.New("endpoint is not configured"))
	}
	body, err := json.Marshal(generationRequest{
		Inputs:     instruction,
		Parameters: generationParameters{MaxNewTokens: g.maxNewTokens},
	})
	if err != nil {
		return "", collaboratorErr("greeter", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", collaboratorErr("greeter", fmt.Errorf("request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", collaboratorErr("greeter", fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", collaboratorErr("greeter", fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", collaboratorErr("greeter", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(payload)))
	}
	if !gjson.ValidBytes(payload) {
		return "", collaboratorErr("greeter", errors.New("response is not valid json"))
	}

	text := strings.TrimSpace(gjson.GetBytes(payload, g.resultPath).String())
	if text == "" {
		return "", collaboratorErr("greeter", fmt.Errorf("no text at %q", g.resultPath))
	}
	return text, nil
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
