package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"withpost/internal/state"
)

// stateReport is the YAML shape of the state subcommand's output.
type stateReport struct {
	Path        string         `yaml:"path"`
	PostEnabled bool           `yaml:"post_enabled"`
	Records     []state.Record `yaml:"records"`
}

func newStateCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the records in the step state file",
		Long: `Show the KEY=value records in the file named by GITHUB_STATE and
whether the post phase has been enabled.

Example:
  GITHUB_STATE=/tmp/state withpost state --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := app.stateReader()

			records, err := reader.Records()
			if err != nil {
				return err
			}
			enabled, err := reader.PostEnabled()
			if err != nil {
				return err
			}

			report := stateReport{
				Path:        app.Config.StateFilePath,
				PostEnabled: enabled,
				Records:     records,
			}

			switch format {
			case "table":
				return writeStateTable(cmd.OutOrStdout(), report)
			case "yaml":
				return writeStateYAML(cmd.OutOrStdout(), report)
			default:
				return fmt.Errorf("unknown format %q (want table or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table or yaml")

	return cmd
}

func writeStateTable(w io.Writer, report stateReport) error {
	fmt.Fprintf(w, "State file: %s\n", report.Path)
	if report.PostEnabled {
		fmt.Fprintln(w, "Post phase: enabled")
	} else {
		fmt.Fprintln(w, "Post phase: disabled")
	}

	if len(report.Records) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Key", "Value")
	for _, rec := range report.Records {
		if err := table.Append([]string{rec.Key, rec.Value}); err != nil {
			return fmt.Errorf("failed to render state table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render state table: %w", err)
	}
	return nil
}

func writeStateYAML(w io.Writer, report stateReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return enc.Close()
}
