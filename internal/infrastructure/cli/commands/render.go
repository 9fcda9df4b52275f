package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

const previewCandidates = 3

func renderStaged(out io.Writer, b *domain.SampleBundle) {
	fmt.Fprintf(out, "Captured %s %s, %d element(s)\n", b.Meta.Mode, b.Meta.Rect, len(b.Ranked))
	if b.Meta.Package != "" {
		fmt.Fprintf(out, "App: %s %s\n", b.Meta.Package, b.Meta.Activity)
	}
	for _, w := range warningLines(b.Meta.Warnings) {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}
	for i, d := range b.Ranked {
		if i == previewCandidates {
			fmt.Fprintf(out, "  ... %d more in nodes.json\n", len(b.Ranked)-i)
			break
		}
		fmt.Fprintf(out, "  #%d score=%d %s\n", i+1, d.Score, describe(d.ElementDescriptor))
	}
}

func renderOutcome(out io.Writer, o domain.Outcome) {
	if o.Committed() {
		fmt.Fprintf(out, "Saved to %s\n", o.Path)
		return
	}
	fmt.Fprintf(out, "Discarded: %s\n", o.Reason)
}

func warningLines(w domain.Warnings) []string {
	var lines []string
	if w.CropProbablyBlack {
		lines = append(lines, "crop is almost entirely black; the window may block screen capture")
	}
	if w.EmptyNodes {
		lines = append(lines, "no elements found; code.txt explains the fallbacks")
	}
	return lines
}

func describe(d domain.ElementDescriptor) string {
	parts := []string{}
	if d.Class != nil {
		parts = append(parts, shortClass(*d.Class))
	}
	if d.HasID() {
		parts = append(parts, "id="+*d.ID)
	}
	if d.HasText() {
		parts = append(parts, fmt.Sprintf("text=%q", *d.Text))
	}
	if d.HasDesc() {
		parts = append(parts, fmt.Sprintf("desc=%q", *d.Desc))
	}
	parts = append(parts, "clickable="+domain.FormatTriState(d.Clickable))
	return strings.Join(parts, " ")
}

func shortClass(cls string) string {
	if i := strings.LastIndex(cls, "."); i >= 0 {
		return cls[i+1:]
	}
	return cls
}
