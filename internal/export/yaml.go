package export

import (
	"io"

	"github.com/govassist/widget-agent/internal"
	"gopkg.in/yaml.v3"
)

// transcript is the YAML shape of an exported snapshot
type transcript struct {
	SessionID string        `yaml:"session_id"`
	User      string        `yaml:"user,omitempty"`
	Messages  []yamlMessage `yaml:"messages"`
}

type yamlMessage struct {
	Sender string `yaml:"sender"`
	Text   string `yaml:"text,omitempty"`
	Image  string `yaml:"image,omitempty"`
}

// YAMLExporter exports the transcript in YAML format
type YAMLExporter struct{}

// Export writes the snapshot as a YAML document
func (e *YAMLExporter) Export(snap *internal.Snapshot, w io.Writer) error {
	t := transcript{
		SessionID: snap.SessionID,
		User:      snap.User,
		Messages:  make([]yamlMessage, 0, len(snap.Messages)),
	}
	for _, msg := range snap.Messages {
		t.Messages = append(t.Messages, yamlMessage{Sender: msg.Sender, Text: msg.Text, Image: msg.Image})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(t)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
