package export

import (
	"encoding/json"
	"io"

	"github.com/govassist/widget-agent/internal"
)

// JSONLExporter exports one JSON object per message line
type JSONLExporter struct{}

// Export writes each message as a single JSON line
func (e *JSONLExporter) Export(snap *internal.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, msg := range snap.Messages {
		if err := enc.Encode(msg); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
