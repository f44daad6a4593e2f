package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestGenerateSendsInstructionAndReadsText(t *testing.T) {
	var got GenerateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1beta/models/gemini-pro:generateContent", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("key"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": " [\"Dune\"] \n"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 5, "totalTokenCount": 17}
		}`))
	}))
	defer server.Close()

	client := NewClient("secret", Options{
		BaseURL:        server.URL + "/v1beta/",
		Model:          "models/gemini-pro",
		Temperature:    0.4,
		SafetySettings: []SafetySetting{{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"}},
	})

	gen, err := client.Generate(context.Background(), "recommend please")
	require.NoError(t, err)
	require.Equal(t, `["Dune"]`, gen.Text)
	require.Equal(t, "gemini", gen.Provider)
	require.Equal(t, 17, gen.Usage.TotalTokens)
	require.Equal(t, 12, gen.Usage.PromptTokens)

	require.Len(t, got.Contents, 1)
	require.Equal(t, "recommend please", got.Contents[0].Parts[0].Text)
	require.Equal(t, "HARM_CATEGORY_HARASSMENT", got.SafetySettings[0].Category)
	require.NotNil(t, got.GenerationConfig)
	require.InDelta(t, 0.4, *got.GenerationConfig.Temperature, 0.0001)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "non 2xx", status: http.StatusServiceUnavailable, body: `overloaded`, wantErr: "status=503"},
		{name: "missing candidates", status: http.StatusOK, body: `{"candidates": []}`, wantErr: "missing candidate text"},
		{name: "empty text", status: http.StatusOK, body: `{"candidates": [{"content": {"parts": [{"text": "  "}]}}]}`, wantErr: "missing candidate text"},
		{name: "malformed json", status: http.StatusOK, body: `{"candidates": [`, wantErr: "decode generate content response"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient("secret", Options{BaseURL: server.URL, Model: "gemini-pro"}).Generate(context.Background(), "x")
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGenerateWithoutKeyMakesNoRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := NewClient(" ", Options{BaseURL: server.URL, Model: "gemini-pro"}).Generate(context.Background(), "x")
	require.ErrorContains(t, err, "api key is not configured")
	require.False(t, called)
}

func TestRedactKey(t *testing.T) {
	err := redactKey(io.ErrUnexpectedEOF, "zzz")
	require.Equal(t, io.ErrUnexpectedEOF, err)

	err = redactKey(&testError{msg: `Post "https://host/x?key=abc+def": dial tcp`}, "abc def")
	require.Equal(t, `Post "https://host/x?key=REDACTED": dial tcp`, err.Error())
}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
