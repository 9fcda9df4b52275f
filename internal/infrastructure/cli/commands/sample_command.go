package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/app"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/infrastructure/cli/helpers"
)

type sampleFlags struct {
	sourceFlags
	name    string
	copy    bool
	dumpAll bool
}

func (f *sampleFlags) register(cmd *cobra.Command) {
	f.sourceFlags.register(cmd)
	cmd.Flags().StringVar(&f.name, "name", "", "Use this name instead of prompting")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "Copy the saved sample path to the clipboard")
	cmd.Flags().BoolVar(&f.dumpAll, "dump-all", false, "Also write every element of the tree to tree_flat.json")
}

// NewPointCommand creates the point sampling command
func NewPointCommand(container *app.Container) *cobra.Command {
	var flags sampleFlags

	cmd := &cobra.Command{
		Use:   "point <x> <y>",
		Short: "Sample the elements under a screen point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseCoordinates(args)
			if err != nil {
				return err
			}
			return runSample(cmd, container, flags, domain.PointRegion(v[0], v[1]))
		},
	}
	flags.register(cmd)
	return cmd
}

// NewRectCommand creates the rectangle sampling command
func NewRectCommand(container *app.Container) *cobra.Command {
	var (
		flags   sampleFlags
		corners bool
	)

	cmd := &cobra.Command{
		Use:   "rect <x> <y> <w> <h>",
		Short: "Sample the elements intersecting a screen rectangle",
		Long: `Sample the elements intersecting a screen rectangle.

With --corners the four numbers are two opposite corners (x1 y1 x2 y2), in
any order, as produced by a drag gesture.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseCoordinates(args)
			if err != nil {
				return err
			}
			region := domain.BoxRegion(v[0], v[1], v[2], v[3])
			if corners {
				region = domain.CornerRegion(v[0], v[1], v[2], v[3])
			}
			return runSample(cmd, container, flags, region)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&corners, "corners", false, "Interpret arguments as two corners x1 y1 x2 y2")
	return cmd
}

func runSample(cmd *cobra.Command, container *app.Container, flags sampleFlags, region domain.Region) error {
	flags.apply(cmd, container)
	ctrl := container.Session
	if flags.dumpAll {
		ctrl.Config.Sampling.DumpAllNodes = true
	}
	if flags.name != "" {
		ctrl.Namer = fixedName(flags.name)
	}

	out := cmd.OutOrStdout()
	spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "sampling")
	ctrl.OnStaged = func(b *domain.SampleBundle) {
		spinner.Stop()
		renderStaged(out, b)
	}
	defer func() { ctrl.OnStaged = nil }()

	spinner.Start()
	outcome, err := ctrl.Run(cmd.Context(), region)
	spinner.Stop()
	if err != nil {
		if outcome.Reason == domain.ReasonCaptureFailed {
			return fmt.Errorf("sample failed: %w", err)
		}
		return err
	}
	renderOutcome(out, outcome)

	if flags.copy && outcome.Committed() {
		copyPath(out, container, outcome.Path)
	}
	return nil
}

func parseCoordinates(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q is not an integer", arg)
		}
		out[i] = v
	}
	return out, nil
}

func copyPath(out io.Writer, container *app.Container, path string) {
	if container.Clipboard == nil || !container.Clipboard.Enabled() {
		fmt.Fprintln(out, "Clipboard unavailable on this system.")
		return
	}
	if err := container.Clipboard.Copy(path); err != nil {
		container.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		return
	}
	fmt.Fprintln(out, MsgCopiedToClipboard)
}

// fixedName answers every prompt with the same name, for scripted runs.
// A collision therefore exhausts the retries and discards the sample.
type fixedName string

func (n fixedName) PromptName(context.Context, string) (string, bool, error) {
	return string(n), true, nil
}
