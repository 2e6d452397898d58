package models

// Level tags a notification for the renderer.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

const (
	DisplayBlock = "block"
	DisplayNone  = "none"
)

// Notification is the modal message the UI renders. DisplayStyle always
// mirrors Display.
type Notification struct {
	Header       string `json:"header"`
	Body         string `json:"body"`
	Display      bool   `json:"display"`
	DisplayStyle string `json:"display_style"`
	Level        Level  `json:"level"`
}

// NewNotification returns a visible notification.
func NewNotification(level Level, header, body string) Notification {
	return Notification{
		Header:       header,
		Body:         body,
		Display:      true,
		DisplayStyle: DisplayBlock,
		Level:        level,
	}
}

// HiddenNotification is the initial, invisible notification.
func HiddenNotification() Notification {
	return Notification{DisplayStyle: DisplayNone}
}
