package main

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrashHandler_RestoresTerminalAndExits(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	var out bytes.Buffer
	code := -1
	c := &crashHandler{screen: screen, out: &out, exit: func(n int) { code = n }}

	c.handle("boom")
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "ORBIT CRASHED: boom")
	assert.Contains(t, out.String(), "Stack Trace")
}

func TestCrashHandler_NilIsNoop(t *testing.T) {
	code := -1
	c := &crashHandler{out: &bytes.Buffer{}, exit: func(n int) { code = n }}
	c.handle(nil)
	assert.Equal(t, -1, code)
}
