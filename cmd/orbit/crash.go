package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// crashHandler restores the terminal before printing a panic, then exits
// Shared by the main goroutine and the scheduler goroutine
type crashHandler struct {
	screen tcell.Screen
	out    io.Writer
	exit   func(int)
}

func newCrashHandler(screen tcell.Screen) *crashHandler {
	return &crashHandler{screen: screen, out: os.Stderr, exit: os.Exit}
}

func (c *crashHandler) handle(r any) {
	if r == nil {
		return
	}
	if c.screen != nil {
		c.screen.Fini()
	}
	fmt.Fprintf(c.out, "\n\x1b[31mORBIT CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(c.out, "Stack Trace:\n%s\n", debug.Stack())
	c.exit(1)
}
