package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaClient talks to a local Ollama server's /api/chat endpoint with
// format "json", so the model is forced to emit a single JSON object.
type OllamaClient struct {
	host   string
	model  string
	client *http.Client
}

func NewOllamaClient(host, model string) *OllamaClient {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		host = "http://localhost:11434"
	}
	return &OllamaClient{
		host:   host,
		model:  model,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (o *OllamaClient) Name() string { return "Ollama:" + o.model }
func (o *OllamaClient) Close() error { return nil }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Format   string          `json:"format"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
}

func (o *OllamaClient) GenerateJSON(ctx context.Context, system, prompt string, input any) (json.RawMessage, error) {
	full := prompt
	if input != nil {
		in, _ := json.MarshalIndent(input, "", "  ")
		full = prompt + "\n\n[INPUT JSON]\n" + string(in)
	}
	msgs := make([]ollamaMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, ollamaMessage{Role: "system", Content: system})
	}
	msgs = append(msgs, ollamaMessage{Role: "user", Content: full})

	body, err := json.Marshal(ollamaChatRequest{
		Model:    o.model,
		Messages: msgs,
		Format:   "json",
		Stream:   false,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		err := fmt.Errorf("ollama chat error: status %d: %s", res.StatusCode, string(b))
		if res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusBadRequest {
			return nil, NewPermanentError(err)
		}
		return nil, err
	}
	var cr ollamaChatResponse
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cr.Message.Content) == "" {
		return nil, ErrEmptyResponse
	}
	return json.RawMessage(cr.Message.Content), nil
}
