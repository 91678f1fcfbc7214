package pipeline

import "codeberg.org/snonux/glossarymaker/internal/logging"

// Notifier surfaces run milestones to the user
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(title, message string)

// Notify implements Notifier
func (f NotifierFunc) Notify(title, message string) {
	f(title, message)
}

// LogNotifier writes notifications to the logger
type LogNotifier struct{}

// Notify implements Notifier
func (LogNotifier) Notify(title, message string) {
	logging.Default().Info(title, "message", message)
}
