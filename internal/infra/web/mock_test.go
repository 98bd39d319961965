package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"codegen-agent-gateway/internal/usecase"
)

const testAPIKey = "test-api-key"

// fakeRunUC records calls and returns a scripted result or error.
type fakeRunUC struct {
	res    *usecase.RunResult
	err    error
	calls  int
	prompt string
}

func (f *fakeRunUC) Run(_ context.Context, prompt string) (*usecase.RunResult, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func newTestServer(uc usecase.AgentRunUseCase) *Server {
	logger := zerolog.New(nil)
	return NewServer(uc, testAPIKey, false, &logger)
}

func doRequest(t *testing.T, h http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Detail
}
