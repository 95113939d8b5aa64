package entity

import "fmt"

// InvalidTaskError reports a task missing a required field, most
// commonly the action.
type InvalidTaskError struct {
	Reason string
}

func (e *InvalidTaskError) Error() string {
	return "invalid task: " + e.Reason
}

// UnknownActionError reports an action with no entry in the target
// worker's capability table.
type UnknownActionError struct {
	Worker WorkerName
	Action ActionName
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q for worker %q", e.Action, e.Worker)
}

// ProviderError reports that an external collaborator (market data,
// news search, sentiment, LLM) failed or returned an unusable
// response. It is fatal to the calling worker step.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// PersistenceError reports that the thought store could not read or
// write its durable storage.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("thought store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
