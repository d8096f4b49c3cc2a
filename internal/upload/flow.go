package upload

import (
	"context"
	"log"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// State is a step of the upload flow
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StateProcessing State = "processing"
	StateStored     State = "stored"
)

// Submitter persists a validated upload. *store.Store satisfies it.
type Submitter interface {
	Submit(ctx context.Context, file types.UploadFile, progress analysis.ProgressFunc) (*types.AnalysisRecord, error)
}

// Hooks observe a single run. Nil hooks are skipped.
type Hooks struct {
	OnState    func(State)
	OnProgress analysis.ProgressFunc
}

func (h Hooks) state(s State) {
	if h.OnState != nil {
		h.OnState(s)
	}
}

// Flow validates an upload and hands it to the store
type Flow struct {
	submitter Submitter
	maxSize   int64
}

// NewFlow creates a flow. maxSize <= 0 means MaxFileSize.
func NewFlow(submitter Submitter, maxSize int64) *Flow {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	return &Flow{submitter: submitter, maxSize: maxSize}
}

// MaxSize returns the configured upload limit
func (f *Flow) MaxSize() int64 {
	return f.maxSize
}

// Run takes file from Idle through Validating and Processing to Stored.
// Rejected uploads never reach the store. Every run ends back in Idle.
func (f *Flow) Run(ctx context.Context, file types.UploadFile, hooks Hooks) (*types.AnalysisRecord, error) {
	defer hooks.state(StateIdle)

	hooks.state(StateValidating)
	if err := Validate(file, f.maxSize); err != nil {
		log.Printf("[upload] Rejected %s: %v", file.Name, err)
		hooks.state(StateRejected)
		return nil, err
	}

	hooks.state(StateProcessing)
	record, err := f.submitter.Submit(ctx, file, hooks.OnProgress)
	if err != nil {
		log.Printf("[upload] Processing %s failed: %v", file.Name, err)
		return nil, err
	}

	hooks.state(StateStored)
	return record, nil
}
