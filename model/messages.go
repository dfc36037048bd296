package model

// CompletionResultMsg carries the outcome of one turn back to the UI loop.
type CompletionResultMsg struct {
	Turn  Turn
	Reply string
	Err   error
}

// HighlightExpiredMsg fires HighlightDuration after a message was appended.
type HighlightExpiredMsg struct {
	Index int
}

type MarkdownRenderedMsg struct {
	Epoch        uint64
	MessageIndex int
	Rendered     string
}

type NotificationExpiredMsg struct {
	Seq int
}

type ClipboardCopiedMsg struct {
	Err error
}
