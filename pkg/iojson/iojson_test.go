package iojson

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"repo": "alpha", "open": 2}))

	assert.Equal(t, "{\n  \"open\": 2,\n  \"repo\": \"alpha\"\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	err := WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)})
	require.Error(t, err)

	assert.Empty(t, out.String())
	var doc Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &doc))
	assert.Equal(t, "marshal output", doc.Message)
	assert.Contains(t, doc.Data, "json_error")
}

func TestMarshalError(t *testing.T) {
	var doc Error
	require.NoError(t, json.Unmarshal([]byte(MarshalError("audit failed", map[string]any{"repo": "x"})), &doc))
	assert.Equal(t, Error{Message: "audit failed", Data: map[string]any{"repo": "x"}}, doc)

	assert.JSONEq(t, `{"message":"boom"}`, MarshalError("boom", nil))
}
