// Package notify renders transient user notifications. One shared dispatcher
// is constructed at package init with fixed configuration; pages call the
// package-level functions.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Dispatcher struct {
	mu  sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Dispatcher {
	return &Dispatcher{out: out}
}

func (d *Dispatcher) emit(label, message, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if description != "" {
		fmt.Fprintf(d.out, "[%s] %s: %s\n", label, message, description)
		return
	}
	fmt.Fprintf(d.out, "[%s] %s\n", label, message)
}

func (d *Dispatcher) Success(message, description string) { d.emit("ok", message, description) }
func (d *Dispatcher) Error(message, description string)   { d.emit("error", message, description) }
func (d *Dispatcher) Warning(message, description string) { d.emit("warn", message, description) }
func (d *Dispatcher) Info(message, description string)    { d.emit("info", message, description) }

var std = New(os.Stderr)

func Default() *Dispatcher { return std }

func Success(message, description string) { std.Success(message, description) }
func Error(message, description string)   { std.Error(message, description) }
func Warning(message, description string) { std.Warning(message, description) }
func Info(message, description string)    { std.Info(message, description) }
