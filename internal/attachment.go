package internal

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/h2non/filetype"
)

// PendingAttachment is the ephemeral image held between a paste action and
// the next send. It is never persisted; sending or logout discards it.
type PendingAttachment struct {
	DataURI string
}

// ReadClipboardAttachment inspects the system clipboard for pasteable
// image content. Non-image content is silently ignored per the widget's
// error policy: the return is nil with no error surfaced to the user.
func ReadClipboardAttachment() *PendingAttachment {
	text, err := clipboard.ReadAll()
	if err != nil {
		LogDebug("clipboard read failed: %v", err)
		return nil
	}
	return AttachmentFromText(text)
}

// AttachmentFromText interprets pasted text as an attachment: either an
// image data URI, or a path to a file whose bytes sniff as an image.
// Anything else yields nil.
func AttachmentFromText(text string) *PendingAttachment {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "data:image/") {
		return &PendingAttachment{DataURI: text}
	}

	uri, err := dataURIFromFile(text)
	if err != nil {
		LogDebug("ignoring non-image paste: %v", err)
		return nil
	}
	return &PendingAttachment{DataURI: uri}
}

// dataURIFromFile reads a file and encodes it as an image data URI,
// failing when the content does not sniff as an image
func dataURIFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return "", err
	}
	if !filetype.IsImage(data) {
		return "", fmt.Errorf("%s is not an image", path)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("data:%s;base64,%s", kind.MIME.Value, encoded), nil
}
