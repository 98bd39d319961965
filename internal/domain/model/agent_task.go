package model

// TaskState is the closed classification of a remote agent run's status.
// The agent service reports an open-ended set of labels; only three of them
// carry special meaning for the gateway, everything else counts as active.
type TaskState int

const (
	TaskStatePending TaskState = iota
	TaskStateActive
	TaskStateCompleted
	TaskStateFailed
)

func (s TaskState) String() string {
	switch s {
	case TaskStatePending:
		return "pending"
	case TaskStateCompleted:
		return "completed"
	case TaskStateFailed:
		return "failed"
	default:
		return "active"
	}
}

// TaskStatus pairs the classified state with the raw label the agent service
// reported. The raw label is echoed back to callers when a task turns active.
type TaskStatus struct {
	State TaskState
	Raw   string
}

// ParseTaskStatus classifies a raw status label. The match is exact and
// case-sensitive: "pending", "completed" and "failed" are special, any other
// value (running, evaluating, even empty) is active.
func ParseTaskStatus(raw string) TaskStatus {
	switch raw {
	case "pending":
		return TaskStatus{State: TaskStatePending, Raw: raw}
	case "completed":
		return TaskStatus{State: TaskStateCompleted, Raw: raw}
	case "failed":
		return TaskStatus{State: TaskStateFailed, Raw: raw}
	default:
		return TaskStatus{State: TaskStateActive, Raw: raw}
	}
}

// AgentTask is the in-flight view of one remote agent run. It lives for a
// single request and is updated in place on every refresh. ID is empty when
// the remote service exposed no identifier for the run.
type AgentTask struct {
	ID           string
	Status       TaskStatus
	Result       string
	ErrorMessage string
}
