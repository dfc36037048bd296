package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"inquisitive/config"
	appmodel "inquisitive/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

const (
	codeBar    = "┃"
	codeBorder = "━"
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	session := a.dataModel.Session
	messages := session.Snapshot()

	if len(messages) == 0 && !session.Thinking() {
		a.viewport.SetContent(DimStyle.Render("No messages yet.\nAsk me anything using the input below!"))
		return
	}

	highlightIdx, highlighted := session.Highlight()
	cacheValid := a.renderEpoch == session.Epoch()

	var content strings.Builder

	for i, msg := range messages {
		highlightPrefix := ""
		if highlighted && i == highlightIdx {
			highlightPrefix = HighlightStyle.Render(">>> ")
		}

		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		body, ok := a.rendered[i]
		if !ok || !cacheValid {
			body = msg.Content
		}

		if msg.Role == appmodel.RoleUser {
			content.WriteString(formatUserMessage(highlightPrefix, timestamp, roleLabel(msg.Role), body))
			continue
		}
		content.WriteString(fmt.Sprintf("%s%s %s\n%s\n\n", highlightPrefix, timestamp, roleLabel(msg.Role), body))
	}

	if session.Thinking() {
		content.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render("Thinking...")))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func formatUserMessage(highlightPrefix, timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + codeBar + reset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s%s %s %s\n", highlightPrefix, bar, timestamp, role))

	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

// RenderMarkdown renders content as terminal markdown wrapped to width.
func RenderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	// Plain URLs stay plain so terminals can make them clickable
	content = preprocessLinks(content)

	p := parser.NewWithExtensions(markdown.Extensions() &^ parser.Autolink)
	r := markdown.NewRenderer(width-4, 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)

	return postProcessMarkdown(strings.TrimRight(string(rendered), "\n"), width)
}

func postProcessMarkdown(rendered string, width int) string {
	// 1. Inline code: blue background to red text
	rendered = fixInlineCode(rendered)

	// 2. Color plain URLs red
	rendered = fixMarkdownLinks(rendered)

	// 3. Frame code blocks with horizontal lines
	rendered = frameCodeBlocks(rendered, width)

	return rendered
}

// preprocessLinks strips [text](url) down to url.
func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")

	for i, line := range lines {
		// Code block lines carry the bar prefix
		if !strings.Contains(line, codeBar) {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}

	return strings.Join(lines, "\n")
}

func frameCodeBlocks(s string, width int) string {
	lines := strings.Split(s, "\n")
	var result []string
	var codeBlockLines []string
	inCodeBlock := false

	darkGray := "\x1b[90m"
	reset := "\x1b[0m"
	lineLen := width - 4
	if lineLen < 8 {
		lineLen = 8
	}
	bottom := darkGray + strings.Repeat(codeBorder, lineLen) + reset

	closeBlock := func() {
		result = append(result, codeBlockLines...)
		result = append(result, "", bottom, "")
		codeBlockLines = nil
		inCodeBlock = false
	}

	for _, line := range lines {
		if strings.Contains(line, codeBar) {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLines = []string{}

				label := "[code]"
				leftLen := (lineLen - len(label)) / 2
				rightLen := lineLen - len(label) - leftLen
				top := darkGray + strings.Repeat(codeBorder, leftLen) + reset + label + darkGray + strings.Repeat(codeBorder, rightLen) + reset

				result = append(result, "", top, "")
			}

			codeBlockLines = append(codeBlockLines, stripCodeBlockPrefix(line))
			continue
		}

		if inCodeBlock {
			closeBlock()
		}
		result = append(result, line)
	}

	if inCodeBlock && len(codeBlockLines) > 0 {
		closeBlock()
	}

	return strings.Join(result, "\n")
}

// stripCodeBlockPrefix drops everything up to and including the bar and
// one following space.
func stripCodeBlockPrefix(line string) string {
	idx := strings.Index(line, codeBar)
	if idx < 0 {
		return line
	}
	after := idx + len(codeBar)
	if after < len(line) && line[after] == ' ' {
		after++
	}
	if after < len(line) {
		return line[after:]
	}
	return ""
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	epoch := a.dataModel.Session.Epoch()
	width := a.width

	return func() tea.Msg {
		startTime := time.Now()
		rendered := RenderMarkdown(content, width)

		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Markdown for message %d (%d chars) rendered in %v",
				messageIndex, len(content), time.Since(startTime))
		}

		return appmodel.MarkdownRenderedMsg{
			Epoch:        epoch,
			MessageIndex: messageIndex,
			Rendered:     rendered,
		}
	}
}
