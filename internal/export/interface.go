package export

import (
	"fmt"
	"io"

	"github.com/govassist/widget-agent/internal"
)

// Exporter writes a widget transcript in one output format
type Exporter interface {
	Export(snap *internal.Snapshot, w io.Writer) error
	Extension() string
}

// NewExporter creates an exporter for the given format name
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}
