package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inquisitive/model"
	"inquisitive/provider/testutil"
)

func TestOllamaComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"model":"llama3.1","message":{"role":"assistant","content":"Hi there"},"done":true}`)
	}))
	defer server.Close()

	p, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1"})
	if err != nil {
		t.Fatal(err)
	}
	reply, err := p.Complete(context.Background(), testutil.SingleUserMessage("Hello"))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if reply != "Hi there" {
		t.Errorf("reply = %q", reply)
	}
}

func TestOllamaStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"model \"missing\" not found"}`)
	}))
	defer server.Close()

	p, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "missing"})
	_, err := p.Complete(context.Background(), testutil.SingleUserMessage("Hello"))

	ce, ok := model.AsCompletionError(err)
	if !ok || ce.Kind != model.FailureProvider || ce.StatusCode != 404 {
		t.Fatalf("err = %v", err)
	}
	if ce.Message != `model "missing" not found` {
		t.Errorf("Message = %q", ce.Message)
	}
}

func TestOllamaPingClassifiesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"server is loading"}`)
	}))
	p, _ := NewOllamaProvider(Config{BaseURL: server.URL})

	ce, ok := model.AsCompletionError(p.Ping(context.Background()))
	if !ok || ce.Kind != model.FailureProvider || ce.StatusCode != 500 || ce.Message != "server is loading" {
		t.Errorf("status ping error = %+v", ce)
	}

	server.Close()
	ce, ok = model.AsCompletionError(p.Ping(context.Background()))
	if !ok || ce.Kind != model.FailureTransport {
		t.Errorf("unreachable ping error = %+v", ce)
	}
}

func TestOllamaListsModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"models":[{"name":"llama3.1:latest","size":4920753328}]}`)
	}))
	defer server.Close()

	p, _ := NewOllamaProvider(Config{BaseURL: server.URL})
	var lister ModelLister = p
	models, err := lister.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error: %v", err)
	}
	if len(models) != 1 || models[0].Name != "llama3.1:latest" {
		t.Errorf("models = %+v", models)
	}
}
