package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/app"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:    opts.Verbose,
		ConfigPath: opts.ConfigPath,
	})
	if err != nil {
		return nil, nil, err
	}
	container.Session.Namer = NewNamePrompter(nil, nil)
	container.Clipboard = NewClipboard()

	root := &cobra.Command{
		Use:   "uisampler",
		Short: "Sample on-screen UI elements into locator code",
		Long: `uisampler captures a point or region of the screen, collects the UI elements
under it, and writes a named sample directory with the screenshot, the crop,
ranked element descriptors and layered locator code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		commands.NewPointCommand(container),
		commands.NewRectCommand(container),
		commands.NewListCommand(container),
		commands.NewLastCommand(container),
		commands.NewShowCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, container, nil
}
