package docs

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	rendererMu sync.Mutex
	// Renderers are cached per style and width. WithAutoStyle is avoided since
	// it queries the terminal background and can block.
	renderers = map[string]*glamour.TermRenderer{}
)

// Render formats markdown for the terminal, wrapped at width. On any
// renderer error the markdown is returned unchanged.
func Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := Style()
	key := style + ":" + strconv.Itoa(width)
	rendererMu.Lock()
	r := renderers[key]
	rendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		rendererMu.Lock()
		if existing := renderers[key]; existing != nil {
			r = existing
		} else {
			renderers[key] = rr
			r = rr
		}
		rendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// Style picks the glamour style from GESTAO_THEME (light|dark). NO_COLOR
// selects the plain ascii style.
func Style() string {
	if os.Getenv("NO_COLOR") != "" {
		return styles.AsciiStyle
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GESTAO_THEME"))) {
	case "light":
		return styles.LightStyle
	default:
		return styles.DarkStyle
	}
}
