package analysis

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/resume-analyzer/internal/types"
)

//go:embed templates.json
var templatesJSON []byte

// cache stores the parsed template pool to avoid repeated JSON parsing
var (
	templatesOnce   sync.Once
	templatesCached []types.AnalysisRecord
	templatesErr    error
)

// DefaultTemplates returns the embedded canned analyses.
// Callers receive their own copy and may modify it.
func DefaultTemplates() ([]types.AnalysisRecord, error) {
	templatesOnce.Do(func() {
		templatesCached, templatesErr = ParseTemplates(templatesJSON)
	})
	if templatesErr != nil {
		return nil, templatesErr
	}

	out := make([]types.AnalysisRecord, 0, len(templatesCached))
	for i := range templatesCached {
		c, err := cloneRecord(&templatesCached[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// ParseTemplates decodes and validates a JSON array of analysis templates
func ParseTemplates(data []byte) ([]types.AnalysisRecord, error) {
	var templates []types.AnalysisRecord
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse analysis templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("analysis template pool is empty")
	}

	for i := range templates {
		if err := templates[i].Validate(); err != nil {
			return nil, fmt.Errorf("analysis template %d is invalid: %w", i, err)
		}
	}
	return templates, nil
}

// cloneRecord deep-copies a record through its JSON form so the copy
// is indistinguishable from one read back from storage
func cloneRecord(r *types.AnalysisRecord) (*types.AnalysisRecord, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to copy analysis template: %w", err)
	}
	var out types.AnalysisRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy analysis template: %w", err)
	}
	return &out, nil
}
