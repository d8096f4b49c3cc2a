// Package analysis produces AnalysisRecords for uploaded résumés.
// The only implementation today is a mock that returns canned analyses;
// an inference-backed Provider can be dropped in without touching the store.
package analysis

import (
	"context"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Phase names a cosmetic processing stage reported while an analysis runs
type Phase string

const (
	PhaseUploading  Phase = "uploading"
	PhaseExtracting Phase = "extracting"
	PhaseAnalyzing  Phase = "analyzing"
	PhaseFinalizing Phase = "finalizing"
)

// Phases lists every phase in the order they are reported, with the percentage at which each starts
var Phases = []Progress{
	{Phase: PhaseUploading, Percent: 0},
	{Phase: PhaseExtracting, Percent: 30},
	{Phase: PhaseAnalyzing, Percent: 60},
	{Phase: PhaseFinalizing, Percent: 90},
}

// Progress is a single progress notification
type Progress struct {
	Phase   Phase `json:"phase"`
	Percent int   `json:"percent"`
}

// Label returns the user-facing text for the phase
func (p Phase) Label() string {
	switch p {
	case PhaseUploading:
		return "Uploading file..."
	case PhaseExtracting:
		return "Extracting text..."
	case PhaseAnalyzing:
		return "AI analysis in progress..."
	case PhaseFinalizing:
		return "Finalizing results..."
	default:
		return string(p)
	}
}

// ProgressFunc receives progress notifications. It may be nil.
type ProgressFunc func(Progress)

// Provider analyzes an uploaded file.
// The returned record's ID and FileName are assigned by the caller.
type Provider interface {
	Analyze(ctx context.Context, file types.UploadFile, progress ProgressFunc) (*types.AnalysisRecord, error)
}
