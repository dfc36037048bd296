package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
)

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient("", "", Options{})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if c.GetModel() != DefaultModel {
		t.Errorf("model = %q, want %q", c.GetModel(), DefaultModel)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	if _, err := NewClient("://bad", "m", Options{}); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestCompleteSendsOptions(t *testing.T) {
	var got api.ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"m","message":{"role":"assistant","content":"Hi there"},"done":true}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "m", Options{Temperature: 0.7, MaxTokens: 1000})
	if err != nil {
		t.Fatal(err)
	}

	reply, err := c.Complete(context.Background(), []api.Message{{Role: "user", Content: "Hello"}})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if reply != "Hi there" {
		t.Errorf("reply = %q", reply)
	}

	if got.Stream == nil || *got.Stream {
		t.Error("request should disable streaming")
	}
	if got.Options["temperature"] != 0.7 {
		t.Errorf("temperature option = %v", got.Options["temperature"])
	}
	if got.Options["num_predict"] != float64(1000) {
		t.Errorf("num_predict option = %v", got.Options["num_predict"])
	}
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.1:latest","size":42}]}`))
	}))
	defer server.Close()

	c, _ := NewClient(server.URL, "", Options{})
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error: %v", err)
	}
	if len(models) != 1 || models[0].Name != "llama3.1:latest" || models[0].Size != 42 {
		t.Errorf("models = %+v", models)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}
