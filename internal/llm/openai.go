package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// OpenAIClient talks to any OpenAI-compatible endpoint (api.openai.com,
// Ollama, a proxy). One client serves both embeddings and chat.
type OpenAIClient struct {
	BaseURL    string
	APIKey     string
	ChatModel  string
	EmbedModel string
	HTTPClient *http.Client
}

func NewOpenAIClient(baseURL, chatModel, embedModel string) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIClient{
		BaseURL:    baseURL,
		APIKey:     os.Getenv("OPENAI_API_KEY"),
		ChatModel:  chatModel,
		EmbedModel: embedModel,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type embeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (c *OpenAIClient) Embed(ctx context.Context, text string) (*EmbeddingResult, error) {
	var res embeddingResponse
	err := c.post(ctx, "/embeddings", embeddingRequest{Input: text, Model: c.EmbedModel}, &res)
	if err != nil {
		return nil, err
	}
	if len(res.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return &EmbeddingResult{
		Embedding: res.Data[0].Embedding,
		Model:     c.EmbedModel,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:    c.ChatModel,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	var res chatResponse
	if err := c.post(ctx, "/chat/completions", req, &res); err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return res.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, reqBody, out interface{}) error {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
