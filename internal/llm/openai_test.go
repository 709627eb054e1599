package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		var req embeddingRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Input != "hello" || req.Model != "test-embed" {
			t.Errorf("Unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-chat", "test-embed")
	res, err := c.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(res.Embedding) != 3 || res.Model != "test-embed" {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "test-chat" || len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("Unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "75192 is the biggest."}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-chat", "test-embed")
	out, err := c.Generate(context.Background(), "which falcon is biggest?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "75192 is the biggest." {
		t.Errorf("Unexpected completion: %q", out)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "m", "m")
	if _, err := c.Generate(context.Background(), "hi"); err == nil {
		t.Error("Expected error on 401")
	}
	if _, err := c.Embed(context.Background(), "hi"); err == nil {
		t.Error("Expected error on 401")
	}
}

func TestModelSelection(t *testing.T) {
	os.Unsetenv("BRICKMIND_CHAT_MODEL")
	if ChatModel("") != DefaultChatModel {
		t.Errorf("Default chat model: %q", ChatModel(""))
	}
	if ChatModel("configured") != "configured" {
		t.Errorf("Configured chat model ignored")
	}
	os.Setenv("BRICKMIND_CHAT_MODEL", "from-env")
	defer os.Unsetenv("BRICKMIND_CHAT_MODEL")
	if ChatModel("configured") != "from-env" {
		t.Errorf("Env chat model did not win")
	}

	os.Unsetenv("OPENAI_BASE_URL")
	if BaseURL("") != defaultBaseURL {
		t.Errorf("Default base URL: %q", BaseURL(""))
	}
}
