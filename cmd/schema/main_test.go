package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSchema(&buf))

	var schema map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
	assert.Contains(t, buf.String(), `"admin_key"`)
	assert.Contains(t, buf.String(), `"cron_hour"`)
	assert.Equal(t, byte('\n'), buf.Bytes()[buf.Len()-1])
}
