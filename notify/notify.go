// Package notify delivers the short messages an operator sees after an action.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/jrsteele09/starose-admin/internal/ui"
	"github.com/rs/zerolog"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(n Notification)
}

func Success(n Notifier, format string, args ...any) {
	n.Notify(Notification{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

func Error(n Notifier, format string, args ...any) {
	n.Notify(Notification{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}

func Warning(n Notifier, format string, args ...any) {
	n.Notify(Notification{Level: LevelWarning, Message: fmt.Sprintf(format, args...)})
}

var levelColours = map[Level]string{
	LevelSuccess: ui.Green,
	LevelError:   ui.Red,
	LevelWarning: ui.Yellow,
}

var levelSymbols = map[Level]string{
	LevelSuccess: "✔",
	LevelError:   "✖",
	LevelWarning: "⚠",
}

// Console prints notifications to a terminal.
type Console struct {
	out    io.Writer
	colour bool
	mu     sync.Mutex
}

func NewConsole(out io.Writer, colour bool) *Console {
	return &Console{out: out, colour: colour}
}

func (c *Console) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := fmt.Sprintf("%s %s", levelSymbols[n.Level], n.Message)
	fmt.Fprintln(c.out, ui.Colourise(c.colour, levelColours[n.Level], line))
}

// Collector keeps notifications in memory, one collector per HTTP request.
type Collector struct {
	mu            sync.Mutex
	notifications []Notification
}

func (c *Collector) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, n)
}

// Notifications returns a copy of everything collected so far.
func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Logged writes every notification to the logger before passing it on.
func Logged(next Notifier, logger zerolog.Logger) Notifier {
	return loggedNotifier{next: next, log: logger}
}

type loggedNotifier struct {
	next Notifier
	log  zerolog.Logger
}

func (l loggedNotifier) Notify(n Notification) {
	event := l.log.Info()
	switch n.Level {
	case LevelError:
		event = l.log.Error()
	case LevelWarning:
		event = l.log.Warn()
	}
	event.Msg(n.Message)
	l.next.Notify(n)
}
