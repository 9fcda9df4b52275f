package commands

import (
	"github.com/spf13/cobra"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/app"
)

// sourceFlags choose where screens and element trees come from.
type sourceFlags struct {
	screenshot string
	snapshot   string
	display    int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.screenshot, "screenshot", "", "Replay a saved screenshot instead of capturing a display")
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "Element tree snapshot (JSON) to sample; overrides tree.snapshot")
	cmd.Flags().IntVar(&f.display, "display", 0, "Display index for live capture")
}

func (f *sourceFlags) apply(cmd *cobra.Command, container *app.Container) {
	switch {
	case f.screenshot != "":
		container.UseScreenshot(f.screenshot)
	case cmd.Flags().Changed("display"):
		container.UseDisplay(f.display)
	}
	if f.snapshot != "" {
		container.UseSnapshot(f.snapshot)
	}
}
