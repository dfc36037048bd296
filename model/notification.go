package model

type NotificationKind int

const (
	NotificationSuccess NotificationKind = iota
	NotificationError
)

func (k NotificationKind) String() string {
	if k == NotificationError {
		return "error"
	}
	return "success"
}

// Notification is a short user-visible message raised by the session.
type Notification struct {
	Kind        NotificationKind
	Title       string
	Description string
}

// NotificationSink receives notifications synchronously at the event that
// raised them.
type NotificationSink interface {
	Notify(n Notification)
}

// NotificationSinkFunc adapts a plain function to NotificationSink.
type NotificationSinkFunc func(n Notification)

func (f NotificationSinkFunc) Notify(n Notification) {
	f(n)
}

var (
	FailureNotification = Notification{
		Kind:        NotificationError,
		Title:       "Error",
		Description: "Failed to get a response. Please try again.",
	}

	ClearedNotification = Notification{
		Kind:        NotificationSuccess,
		Title:       "Chat cleared",
		Description: "Your conversation has been reset.",
	}
)
