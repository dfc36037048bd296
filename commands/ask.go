package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"inquisitive/model"
	"inquisitive/ui"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Ask a single question and print the reply",
	Long: `Send one message to the configured provider and print the reply.

The prompt is taken from the arguments, or read from stdin when none are given.
Replies are rendered as markdown when stdout is a terminal.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	prompt, err := readPrompt(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newProvider(cfg)
	if err != nil {
		return err
	}

	session := model.NewSession(p, cfg.Preamble(), stderrSink(cmd.ErrOrStderr()))
	reply, err := session.Send(cmd.Context(), prompt)
	switch {
	case errors.Is(err, model.ErrEmptyInput):
		return fmt.Errorf("empty prompt")
	case err != nil:
		return fmt.Errorf("ask failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if width, ok := terminalWidth(out); ok {
		fmt.Fprintln(out, ui.RenderMarkdown(reply.Content, width))
		return nil
	}
	fmt.Fprintln(out, reply.Content)
	return nil
}

// readPrompt joins args, or reads stdin when there are none. An interactive
// stdin with no args is an error rather than a silent wait.
func readPrompt(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no prompt: pass one as an argument or pipe it on stdin")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// stderrSink prints session notifications as single lines on w.
func stderrSink(w io.Writer) model.NotificationSink {
	return model.NotificationSinkFunc(func(n model.Notification) {
		icon, style := ui.NotificationStyle(n.Kind)
		fmt.Fprintf(w, "%s %s: %s\n", icon, style.Render(n.Title), n.Description)
	})
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}
