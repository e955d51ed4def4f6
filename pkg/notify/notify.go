// Package notify carries short user-facing notices from the core to whichever
// surface is showing them.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level
	Message string
}

type Notifier interface {
	Notify(level Level, message string)
}

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Level, string) {}

// Queue buffers notices until the next page render drains them.
type Queue struct {
	mu      sync.Mutex
	notices []Notice
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Notify(level Level, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notices = append(q.notices, Notice{Level: level, Message: message})
}

// Drain returns the pending notices and empties the queue.
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	return out
}

// Printer writes notices to a terminal, coloured by level.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Notify(level Level, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var c *color.Color
	switch level {
	case LevelSuccess:
		c = color.New(color.FgGreen)
	case LevelWarning:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed)
	}
	fmt.Fprintln(p.w, c.Sprint(message))
}
