package dump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/natefinch/atomic"
)

// Manifest records one completed dump run.
type Manifest struct {
	Tool        string `json:"tool"`
	Field       string `json:"field"`
	Start       string `json:"start"`
	End         string `json:"end"`
	StartMillis int64  `json:"start_millis"`
	EndMillis   int64  `json:"end_millis"`
	Query       string `json:"query"`
	Command     string `json:"command"`
	FinishedAt  string `json:"finished_at"`
}

// NewManifest builds the run record for a dump that just finished.
func NewManifest(tool, field string, start, end time.Time, filter, cmdLine string) Manifest {
	return Manifest{
		Tool:        tool,
		Field:       field,
		Start:       start.Format(time.RFC3339),
		End:         end.Format(time.RFC3339),
		StartMillis: start.UnixMilli(),
		EndMillis:   end.UnixMilli(),
		Query:       filter,
		Command:     cmdLine,
		FinishedAt:  time.Now().Format(time.RFC3339),
	}
}

// WriteManifest writes the manifest as indented JSON via an atomic rename,
// so a crash never leaves a torn file.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode manifest: %w", err)
	}

	data = append(data, '\n')

	writeErr := atomic.WriteFile(path, bytes.NewReader(data))
	if writeErr != nil {
		return fmt.Errorf("cannot write manifest %s: %w", path, writeErr)
	}

	return nil
}
