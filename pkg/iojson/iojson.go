// Package iojson writes JSON documents for command line output.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the JSON shape of a command failure.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func jsonError(msg string, jsonErr error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// MarshalError renders msg and data as an indented Error document. If data
// cannot be marshaled, a minimal document carrying the marshal error is
// returned instead.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		return jsonError(msg, err)
	}
	return string(bits)
}

// WriteError writes an Error document to w.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	_, err := fmt.Fprintln(w, MarshalError(msg, data))
	return err
}

// WriteWith writes obj to w as indented JSON followed by a newline. Marshal
// failures are reported to ew as an Error document and returned.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintln(ew, jsonError("marshal output", err))
		return fmt.Errorf("marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
