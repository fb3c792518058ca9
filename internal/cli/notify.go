package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"gestao-cli/internal/crud"

	"github.com/charmbracelet/lipgloss"
)

// stderrNotifier prints notices as one styled line each.
type stderrNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[crud.Severity]lipgloss.Style
}

func newStderrNotifier(w io.Writer) *stderrNotifier {
	r := lipgloss.NewRenderer(w)
	return &stderrNotifier{
		w: w,
		styles: map[crud.Severity]lipgloss.Style{
			crud.SeveritySuccess: r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"}),
			crud.SeverityError:   r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}),
			crud.SeverityWarning: r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "136", Dark: "214"}),
		},
	}
}

func (n *stderrNotifier) Notify(_ context.Context, no crud.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	title := n.styles[no.Severity].Render(no.Title + ":")
	fmt.Fprintln(n.w, title, no.Text)
}

// promptConfirmer asks on out and reads a s/N answer from in.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *promptConfirmer) Confirm(ctx context.Context, title, body string, opts crud.ConfirmOptions) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(p.out, "%s %s [s/N] ", title, body)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	fmt.Fprintln(p.out)
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
