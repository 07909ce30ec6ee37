// Package notify is the user-visible toast channel. Notifications are fire and
// forget: nothing waits for them to be displayed.
package notify

import (
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(level Level, message string)
}

type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Level, string) {})

const maxFlashToasts = 20

// Flash queues toasts until the next page render drains them.
type Flash struct {
	mu     sync.Mutex
	toasts []Toast
}

func NewFlash() *Flash {
	return &Flash{}
}

func (f *Flash) Notify(level Level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.toasts = append(f.toasts, Toast{Level: level, Message: message})
	if len(f.toasts) > maxFlashToasts {
		f.toasts = f.toasts[len(f.toasts)-maxFlashToasts:]
	}
}

func (f *Flash) Drain() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()

	toasts := f.toasts
	f.toasts = nil
	return toasts
}
