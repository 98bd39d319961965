// File: internal/usecase/agent_run_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"codegen-agent-gateway/internal/domain/model"
	"codegen-agent-gateway/internal/domain/ports/adapter"
	"codegen-agent-gateway/internal/infra/logging"
)

// Compile-time check
var _ AgentRunUseCase = (*agentRunUC)(nil)

// Outcome is the bounded classification of how a run ended, for metrics and
// logs. The wire status may additionally carry free-form active labels.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeActive    Outcome = "active"
)

// RunResult is the final word on one agent run. Status mirrors the task's
// raw status (or the literal "timeout"); at most one of Result and Error is
// set; TaskID falls back to "N/A" when the remote exposed no identifier.
type RunResult struct {
	Status  string
	Result  string
	Error   string
	TaskID  string
	Outcome Outcome
}

type AgentRunUseCase interface {
	Run(ctx context.Context, prompt string) (*RunResult, error)
}

type agentRunUC struct {
	agent    adapter.AgentServiceAdapter
	timeout  time.Duration
	interval time.Duration
	log      *zerolog.Logger

	// swapped by tests to run the poll loop on a simulated clock
	now   func() time.Time
	sleep func(time.Duration)
}

func NewAgentRunUseCase(agent adapter.AgentServiceAdapter, timeout, interval time.Duration, logger *zerolog.Logger) *agentRunUC {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &agentRunUC{
		agent:    agent,
		timeout:  timeout,
		interval: interval,
		log:      logger,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Run submits the prompt and polls the task until it leaves pending or the
// poll window closes. The caller's cancelation is not propagated: a
// disconnected caller does not stop a run already under way.
func (u *agentRunUC) Run(ctx context.Context, prompt string) (*RunResult, error) {
	ctx = context.WithoutCancel(ctx)
	l := logging.With(ctx, u.log)
	defer logging.TraceDuration(l, "AgentRunUC.Run")()

	task, err := u.agent.Submit(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if task.ID != "" {
		ctx = logging.WithTaskID(ctx, task.ID)
		l = logging.With(ctx, u.log)
	}
	l.Info().Str("status", task.Status.Raw).Msg("initial task status")

	start := u.now()
	for task.Status.State == model.TaskStatePending {
		if u.now().Sub(start) > u.timeout {
			l.Warn().Msg("task timed out while waiting to become active")
			return &RunResult{
				Status:  "timeout",
				Error:   fmt.Sprintf("Task timed out after %d seconds.", int(u.timeout.Seconds())),
				TaskID:  displayID(task),
				Outcome: OutcomeTimeout,
			}, nil
		}
		l.Debug().Str("status", task.Status.Raw).Msg("polling task status")
		u.sleep(u.interval)
		if err := u.agent.Refresh(ctx, task); err != nil {
			return nil, err
		}
	}

	switch task.Status.State {
	case model.TaskStateCompleted:
		l.Info().Msg("task completed")
		return &RunResult{
			Status:  task.Status.Raw,
			Result:  task.Result,
			TaskID:  displayID(task),
			Outcome: OutcomeCompleted,
		}, nil
	case model.TaskStateFailed:
		errMsg := task.ErrorMessage
		if errMsg == "" {
			errMsg = "Codegen task failed."
		}
		l.Warn().Msg("task failed")
		return &RunResult{
			Status:  task.Status.Raw,
			Error:   errMsg,
			TaskID:  displayID(task),
			Outcome: OutcomeFailed,
		}, nil
	default:
		// The task left pending for a non-terminal label (running,
		// evaluating, ...). Report it as started; the caller tracks the
		// task id from here, the gateway does not wait for a final result.
		l.Info().Str("status", task.Status.Raw).Msg("task is now active")
		return &RunResult{
			Status:  task.Status.Raw,
			Result:  fmt.Sprintf("Task ID: %s is now active.", displayID(task)),
			TaskID:  displayID(task),
			Outcome: OutcomeActive,
		}, nil
	}
}

func displayID(task *model.AgentTask) string {
	if task.ID == "" {
		return "N/A"
	}
	return task.ID
}
