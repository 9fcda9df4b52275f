// Package locator writes layered fallback selector code for ranked
// descriptors, narrowest expression first.
package locator

import (
	"fmt"
	"strings"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

// Generator emits AutoJs6-style locator code.
type Generator struct {
	// FindTimeoutMS is the findOne timeout written into every selector.
	FindTimeoutMS int
	// MaxCandidates caps how many ranked descriptors get locator blocks.
	MaxCandidates int
	// Screen is used to express click points as resolution-independent ratios.
	Screen domain.Size
}

// New builds a generator from settings and the sampled screen size.
func New(settings domain.CodegenSettings, screen domain.Size) Generator {
	g := Generator{
		FindTimeoutMS: settings.FindTimeoutMS,
		MaxCandidates: settings.MaxCandidates,
		Screen:        screen,
	}
	if g.FindTimeoutMS <= 0 {
		g.FindTimeoutMS = domain.DefaultFindTimeoutMS
	}
	if g.MaxCandidates <= 0 {
		g.MaxCandidates = domain.DefaultMaxCandidates
	}
	return g
}

// Generate returns the full code.txt content.
func (g Generator) Generate(ranked []domain.RankedDescriptor) string {
	lines := []string{
		"// Locator candidates, most stable first.",
		"// With many identical labels or dynamic lists, prefer id + bounds.",
		"",
	}

	if len(ranked) == 0 {
		lines = append(lines, emptyNotice...)
		return strings.Join(lines, "\n") + "\n"
	}

	n := min(len(ranked), g.MaxCandidates)
	for i := 0; i < n; i++ {
		lines = append(lines, g.block(i+1, ranked[i])...)
	}
	return strings.Join(lines, "\n")
}

var emptyNotice = []string{
	"// No elements were found in the selected region.",
	"// Likely causes:",
	"//   - the content is not native UI (WebView, Canvas, game or video surface)",
	"//   - the accessibility tree was not ready yet",
	"//   - the screen was mid-transition (window switch, animation, popup)",
	"//   - the system restricts accessibility for this window",
	"// Suggestions:",
	"//   - fall back to coordinates (click(x, y)) or image matching (images.findImage)",
	"//   - sample again once the screen is idle",
}

func (g Generator) block(rank int, n domain.RankedDescriptor) []string {
	lines := []string{fmt.Sprintf("// #%d score=%d cls=%s clickable=%s",
		rank, n.Score, domain.Deref(n.Class), domain.FormatTriState(n.Clickable))}

	lines = append(lines, g.layered(n.ID, n.Text, n.Desc, n.Bounds, "clickBounds", "click")...)

	if n.NotClickable() && n.Ancestor != nil {
		a := n.Ancestor
		lines = append(lines, "// clickable ancestor fallback:")
		lines = append(lines, g.layered(a.ID, a.Text, a.Desc, a.Bounds, "clickBounds", "clickBounds")...)
		lines = append(lines, fmt.Sprintf("click(%d, %d);", a.Center.X, a.Center.Y))
	}

	lines = append(lines, fmt.Sprintf("click(%d, %d); // ratio x=%s, y=%s",
		n.Center.X, n.Center.Y, ratio(n.Center.X, g.Screen.Width), ratio(n.Center.Y, g.Screen.Height)))
	lines = append(lines, "")
	return lines
}

// layered emits id, text and desc selectors, each bounds-constrained first
// and then unconstrained. Ids click by bounds since they often land on
// containers; text and desc use the given action.
func (g Generator) layered(id, text, desc *string, b domain.Bounds, idAction, labelAction string) []string {
	var lines []string
	for _, sel := range []struct {
		fn     string
		value  *string
		action string
	}{
		{"id", id, idAction},
		{"text", text, labelAction},
		{"desc", desc, labelAction},
	} {
		if sel.value == nil || *sel.value == "" {
			continue
		}
		base := fmt.Sprintf("%s(\"%s\")", sel.fn, Escape(*sel.value))
		lines = append(lines,
			g.findAndAct(fmt.Sprintf("%s.boundsInside(%d, %d, %d, %d)", base, b.Left, b.Top, b.Right, b.Bottom), sel.action),
			g.findAndAct(base, sel.action),
		)
	}
	return lines
}

func (g Generator) findAndAct(selector, action string) string {
	find := fmt.Sprintf("%s.findOne(%d)", selector, g.FindTimeoutMS)
	return fmt.Sprintf("%s && %s.%s();", find, find, action)
}

func ratio(v, total int) string {
	if total <= 0 {
		return "0.000000"
	}
	return fmt.Sprintf("%.6f", float64(v)/float64(total))
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

// Escape makes s safe inside a double-quoted string literal.
func Escape(s string) string {
	return literalEscaper.Replace(s)
}
