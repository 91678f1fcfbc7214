package gui

import (
	"fyne.io/fyne/v2"

	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// desktopNotifier shows pipeline milestones as desktop notifications
type desktopNotifier struct {
	app fyne.App
}

// Notify implements pipeline.Notifier
func (n desktopNotifier) Notify(title, message string) {
	logging.Default().Info(title, "message", message)
	fyne.Do(func() {
		n.app.SendNotification(fyne.NewNotification(title, message))
	})
}
