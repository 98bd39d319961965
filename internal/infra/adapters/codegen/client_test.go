package codegen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"codegen-agent-gateway/internal/domain"
	"codegen-agent-gateway/internal/domain/model"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logger := zerolog.New(nil)
	c, err := NewClient("org-1", "secret-token", baseURL, time.Second, &logger)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewClient_RequiredCredentials(t *testing.T) {
	logger := zerolog.New(nil)
	if _, err := NewClient("", "token", "", 0, &logger); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("empty org id: got %v", err)
	}
	if _, err := NewClient("org-1", "", "", 0, &logger); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("empty api token: got %v", err)
	}
}

func TestSubmit_PostsRunRequest(t *testing.T) {
	var got struct {
		method, path, auth, contentType, requestID string
		body                                       map[string]string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.contentType = r.Header.Get("Content-Type")
		got.requestID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 314, "status": "pending"}`))
	}))
	defer srv.Close()

	// trailing slash on the base url must not leak into the request path
	c := newTestClient(t, srv.URL+"/")
	task, err := c.Submit(context.Background(), "fix the build")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.method != http.MethodPost {
		t.Errorf("method = %q", got.method)
	}
	if got.path != "/organizations/org-1/agent/run" {
		t.Errorf("path = %q", got.path)
	}
	if got.auth != "Bearer secret-token" {
		t.Errorf("authorization = %q", got.auth)
	}
	if got.contentType != "application/json" {
		t.Errorf("content type = %q", got.contentType)
	}
	if got.requestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if got.body["prompt"] != "fix the build" {
		t.Errorf("payload = %v", got.body)
	}

	if task.ID != "314" {
		t.Errorf("task id = %q, want 314", task.ID)
	}
	if task.Status.State != model.TaskStatePending || task.Status.Raw != "pending" {
		t.Errorf("status = %+v", task.Status)
	}
}

func TestSubmit_ResponseEdges(t *testing.T) {
	cases := []struct {
		name     string
		response string
		check    func(t *testing.T, task *model.AgentTask)
	}{
		{
			"missing id -> empty task id",
			`{"status": "pending"}`,
			func(t *testing.T, task *model.AgentTask) {
				if task.ID != "" {
					t.Errorf("task id = %q, want empty", task.ID)
				}
			},
		},
		{
			"null fields -> active status with empty raw",
			`{"id": 12, "status": null, "result": null, "error_message": null}`,
			func(t *testing.T, task *model.AgentTask) {
				if task.Status.State != model.TaskStateActive || task.Status.Raw != "" {
					t.Errorf("status = %+v", task.Status)
				}
			},
		},
		{
			"completed with result",
			`{"id": 12, "status": "completed", "result": "patched"}`,
			func(t *testing.T, task *model.AgentTask) {
				if task.Status.State != model.TaskStateCompleted || task.Result != "patched" {
					t.Errorf("task = %+v", task)
				}
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(c.response))
			}))
			defer srv.Close()

			task, err := newTestClient(t, srv.URL).Submit(context.Background(), "p")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			c.check(t, task)
		})
	}
}

func TestSubmit_RemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Submit(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "submit agent run http 502") {
		t.Fatalf("want http 502 error, got %v", err)
	}
}

func TestRefresh_UpdatesTaskInPlace(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id": 314, "status": "completed", "result": "done"}`))
	}))
	defer srv.Close()

	task := &model.AgentTask{ID: "314", Status: model.ParseTaskStatus("pending")}
	if err := newTestClient(t, srv.URL).Refresh(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/organizations/org-1/agent/run/314" {
		t.Errorf("path = %q", gotPath)
	}
	if task.Status.State != model.TaskStateCompleted || task.Result != "done" {
		t.Errorf("task = %+v", task)
	}
	if task.ID != "314" {
		t.Errorf("task id changed to %q", task.ID)
	}
}

func TestRefresh_WithoutID(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits++
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL).Refresh(context.Background(), &model.AgentTask{})
	if err == nil || !strings.Contains(err.Error(), "task has no id") {
		t.Fatalf("want refusal, got %v", err)
	}
	if hits != 0 {
		t.Errorf("remote was hit %d times for an id-less task", hits)
	}
}

func TestRefresh_RemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	task := &model.AgentTask{ID: "9"}
	err := newTestClient(t, srv.URL).Refresh(context.Background(), task)
	if err == nil || !strings.Contains(err.Error(), "refresh agent run 9 http 404") {
		t.Fatalf("want http 404 error, got %v", err)
	}
}
