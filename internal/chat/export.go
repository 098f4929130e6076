package chat

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a transcript export format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// Export writes messages to w in the given format.
func Export(w io.Writer, messages []Message, format Format) error {
	if messages == nil {
		messages = []Message{}
	}

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(messages)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(messages); err != nil {
			return err
		}
		return encoder.Close()
	case FormatPlain:
		for _, m := range messages {
			if _, err := fmt.Fprintf(w, "[%s] %s: %s\n", m.Clock(), m.Sender, m.Text); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// ExportString is Export into a string.
func ExportString(messages []Message, format Format) (string, error) {
	var sb strings.Builder
	if err := Export(&sb, messages, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}
