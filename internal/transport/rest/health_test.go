package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type corpusPingerMock struct {
	err error
}

func (m *corpusPingerMock) Ping(_ context.Context) error {
	return m.err
}

func healthRequest(t *testing.T, handler http.HandlerFunc, target string) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec.Code, resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&corpusPingerMock{err: errors.New("permission denied")}, "test-version")

	code, resp := healthRequest(t, h.Live, "/live")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even with corpus down", code)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_CorpusUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&corpusPingerMock{}, "test-version")

	code, resp := healthRequest(t, h.Ready, "/ready")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestReady_CorpusDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&corpusPingerMock{err: errors.New("permission denied")}, "test-version")

	code, resp := healthRequest(t, h.Ready, "/ready")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", code)
	}
	if resp.Status != "down" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestHealth_CorpusUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&corpusPingerMock{}, "v1.0.0")

	code, resp := healthRequest(t, h.Health, "/health")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if resp.Version != "v1.0.0" {
		t.Errorf("version = %q", resp.Version)
	}

	corpus, ok := resp.Components["corpus"]
	if !ok {
		t.Fatal("expected a corpus component")
	}
	if corpus.Status != "ok" {
		t.Errorf("corpus status = %q", corpus.Status)
	}
	if corpus.Latency == "" {
		t.Error("expected probe latency for a healthy corpus")
	}
}

func TestHealth_CorpusDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&corpusPingerMock{err: errors.New("permission denied")}, "v1.0.0")

	code, resp := healthRequest(t, h.Health, "/health")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", code)
	}
	if resp.Status != "down" {
		t.Errorf("status = %q", resp.Status)
	}
	if corpus := resp.Components["corpus"]; corpus.Status != "down" {
		t.Errorf("corpus status = %q", corpus.Status)
	}
}
