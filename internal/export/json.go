package export

import (
	"encoding/json"
	"io"

	"github.com/govassist/widget-agent/internal"
)

// JSONExporter exports the transcript as one indented JSON document
type JSONExporter struct{}

// Export writes the snapshot as indented JSON
func (e *JSONExporter) Export(snap *internal.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
