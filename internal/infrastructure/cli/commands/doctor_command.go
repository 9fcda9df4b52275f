package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/app"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	var sources sourceFlags

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check config, storage, display and element tree sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources.apply(cmd, container)
			return runDoctorDiagnostics(cmd, cmd.OutOrStdout(), container)
		},
	}
	sources.register(cmd)
	return cmd
}

func runDoctorDiagnostics(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container.DoctorService == nil {
		return errors.New(ErrDoctorServiceUnavailable)
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	displayDoctorReport(out, report)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	return nil
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
