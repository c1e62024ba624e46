package iojson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"hosts": 3}))
	assert.Equal(t, "{\n  \"hosts\": 3\n}\n", out.String())
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

func TestWriteLine(t *testing.T) {
	type host struct {
		Host string `json:"host"`
	}
	var out bytes.Buffer

	for _, h := range []host{{Host: "web1"}, {Host: "db1"}} {
		require.NoError(t, WriteLine(&out, h))
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{`{"host":"web1"}`, `{"host":"db1"}`}, lines)
}

func TestMarshalError(t *testing.T) {
	var doc Error
	require.NoError(t, json.Unmarshal([]byte(MarshalError("load failed", map[string]any{"path": "~/.ssh/config"})), &doc))
	assert.Equal(t, "load failed", doc.Message)
	assert.Equal(t, "~/.ssh/config", doc.Data["path"])
}
