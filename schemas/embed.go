// Package schemas holds the JSON Schemas for values persisted by the analysis store.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	AnalysisRecord = "analysis_record.schema.json"
	History        = "history.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the contents of an embedded schema file.
func Read(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}
