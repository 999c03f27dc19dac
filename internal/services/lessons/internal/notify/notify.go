// Package notify delivers short user-facing messages.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Log writes notifications to a slog logger.
type Log struct {
	l *slog.Logger
}

func NewLog(l *slog.Logger) *Log {
	if l == nil {
		l = slog.Default()
	}
	return &Log{l: l}
}

func (n *Log) Success(msg string) {
	n.l.Info(msg, "notice", "success")
}

func (n *Log) Info(msg string) {
	n.l.Info(msg, "notice", "info")
}

func (n *Log) Error(msg string) {
	n.l.Warn(msg, "notice", "error")
}

// Terminal prints notifications as single prefixed lines.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (n *Terminal) Success(msg string) {
	n.print("✓", msg)
}

func (n *Terminal) Info(msg string) {
	n.print("•", msg)
}

func (n *Terminal) Error(msg string) {
	n.print("✗", msg)
}

func (n *Terminal) print(prefix, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", prefix, msg)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Info(string)    {}
func (Discard) Error(string)   {}
