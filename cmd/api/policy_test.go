package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPolicy(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPolicy(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "MODULE"))
	assert.Contains(t, lines[2], "hospital")
	assert.True(t, strings.HasSuffix(lines[2], "admin"))
	assert.Contains(t, lines[6], "admin, doctor, pharmacist")
}
