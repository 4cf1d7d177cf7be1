package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON encodes v to w followed by a newline. Non-finite stats are
// emitted as the "Infinity", "-Infinity" and "NaN" string tags by their own
// marshalers, so the encoder never sees a bare NaN.
func WriteJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Keyed wraps a full report under the name it was requested for, giving
// {"<name>": report}.
func Keyed(name string, v any) map[string]any {
	return map[string]any{name: v}
}
