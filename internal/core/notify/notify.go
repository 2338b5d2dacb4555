// Package notify defines the user-facing notifications shown as toasts.
package notify

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single message for the user.
type Notification struct {
	Level   Level
	Message string
}

func Info(msg string) Notification    { return Notification{Level: LevelInfo, Message: msg} }
func Warning(msg string) Notification { return Notification{Level: LevelWarning, Message: msg} }
func Error(msg string) Notification   { return Notification{Level: LevelError, Message: msg} }
