package core

import "fmt"

type Status int // Status of a task as seen by the executor.

const (
	PENDING Status = iota // Constructed and submitted, not yet dequeued.
	RUNNING               // Being processed by a worker.
	SUCCEEDED             // Finished successfully and the result is stored.
	FAILED                // Finished with failure.
	SKIPPED               // A result for the same key already existed.
)

func (s Status) String() string {
	switch s {
	case PENDING:
		return "pending"
	case RUNNING:
		return "running"
	case SUCCEEDED:
		return "succeeded"
	case FAILED:
		return "failed"
	case SKIPPED:
		return "skipped"
	default:
		return "unknown"
	}
}

func ToStatus(s string) (Status, error) {
	switch s {
	case "pending":
		return PENDING, nil
	case "running":
		return RUNNING, nil
	case "succeeded":
		return SUCCEEDED, nil
	case "failed":
		return FAILED, nil
	case "skipped":
		return SKIPPED, nil
	default:
		return 0, fmt.Errorf("unknown status: %s", s)
	}
}

func (s Status) IsFinished() bool {
	return s == SUCCEEDED || s == FAILED || s == SKIPPED
}
