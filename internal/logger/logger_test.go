package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugGatedByVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetVerbose(false)
	SetOutput(&buf)
	defer SetVerbose(false)

	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	SetOutput(&buf)
	Debug("shown %s", "message")
	assert.Contains(t, buf.String(), "shown message")
}

func TestInfoAlwaysLogged(t *testing.T) {
	var buf bytes.Buffer
	SetVerbose(false)
	SetOutput(&buf)

	Info("indexed %d documents", 42)
	assert.Contains(t, buf.String(), "indexed 42 documents")
}
