package adapter

import (
	"context"

	"codegen-agent-gateway/internal/domain/model"
)

// AgentServiceAdapter is the port for the remote SWE agent service.
type AgentServiceAdapter interface {
	// Submit starts an agent run for the prompt and returns the new task.
	Submit(ctx context.Context, prompt string) (*model.AgentTask, error)

	// Refresh re-reads the task's remote state and updates it in place.
	Refresh(ctx context.Context, task *model.AgentTask) error
}
