package collab

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGreeter(t *testing.T) {
	got, err := StaticGreeter("hi there").Greet(context.Background(), GreetingInstruction)
	require.NoError(t, err)
	assert.Equal(t, "hi there", got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = StaticGreeter("hi").Greet(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPGreeter_Greet(t *testing.T) {
	var captured generationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`[{"generated_text":"  Welcome! Which pizza can I get you?  "}]`))
	}))
	defer server.Close()

	greeter := NewHTTPGreeter(server.URL, WithGreeterClient(server.Client()), WithGreeterToken("secret"))
	got, err := greeter.Greet(context.Background(), GreetingInstruction)
	require.NoError(t, err)
	assert.Equal(t, "Welcome! Which pizza can I get you?", got)
	assert.Equal(t, GreetingInstruction, captured.Inputs)
	assert.Equal(t, 50, captured.Parameters.MaxNewTokens)
}

func TestHTTPGreeter_ResultPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"text":"Ciao!"}]}`))
	}))
	defer server.Close()

	greeter := NewHTTPGreeter(server.URL,
		WithGreeterClient(server.Client()),
		WithResultPath("choices.0.text"),
		WithMaxNewTokens(20),
	)
	got, err := greeter.Greet(context.Background(), "greet")
	require.NoError(t, err)
	assert.Equal(t, "Ciao!", got)
}

func TestHTTPGreeter_Failures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "server error", status: http.StatusServiceUnavailable, payload: `{"error":"loading"}`},
		{name: "missing text", status: http.StatusOK, payload: `[{"other":"x"}]`},
		{name: "invalid json", status: http.StatusOK, payload: `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.payload))
			}))
			defer server.Close()

			_, err := NewHTTPGreeter(server.URL, WithGreeterClient(server.Client())).Greet(context.Background(), "greet")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCollaborator), "got %v", err)
		})
	}
}

func TestHTTPGreeter_NoEndpoint(t *testing.T) {
	_, err := NewHTTPGreeter("  ").Greet(context.Background(), "greet")
	assert.ErrorIs(t, err, ErrCollaborator)
}
