package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json
// - table (default for terminals; v must implement Tabular)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "json":
		return WriteJSON(w, v, pretty)
	case "", "table":
		t, ok := v.(Tabular)
		if !ok {
			return WriteJSON(w, v, pretty)
		}
		return WriteTable(w, t)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands. Tabular values are
// written as their underlying records.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	if r, ok := v.(interface{ Records() any }); ok {
		v = r.Records()
	}
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
