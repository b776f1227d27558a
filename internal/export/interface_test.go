package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/govassist/widget-agent/internal"
)

func TestNewExporter(t *testing.T) {
	for _, format := range []string{"json", "jsonl", "md", "markdown", "yaml"} {
		if _, err := NewExporter(format); err != nil {
			t.Errorf("NewExporter(%q) error = %v", format, err)
		}
	}
	if _, err := NewExporter("xml"); err == nil {
		t.Error("NewExporter(xml) should fail")
	}
}

func TestJSONLExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(sampleSnapshot(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		var msg internal.Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sampleSnapshot(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var snap internal.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if snap.User != "Priya Nair" || len(snap.Messages) != 3 {
		t.Errorf("round trip lost fields: %+v", snap)
	}
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleSnapshot(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "user: Priya Nair") {
		t.Errorf("missing user in %q", out)
	}
	if !strings.Contains(out, "sender: user") || !strings.Contains(out, "sender: bot") {
		t.Errorf("messages missing in %q", out)
	}
}
