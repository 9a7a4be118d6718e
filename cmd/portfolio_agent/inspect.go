package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	in   string
	json bool
}

var inspectOpts inspectOptions

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the outline of an exported portfolio page",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return inspectExport(cmd.OutOrStdout(), inspectOpts)
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectOpts.in, "in", "i", "", "Path to an exported HTML file")
	inspectCmd.Flags().BoolVar(&inspectOpts.json, "json", false, "Print the outline as JSON")
	_ = inspectCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(inspectCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func inspectExport(out io.Writer, opts inspectOptions) error {
	html, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	outline, err := export.Inspect(html)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outline)
	}

	fmt.Fprintf(out, "Title: %s\n", outline.Title)
	if outline.Name != "" {
		fmt.Fprintf(out, "Name:  %s\n", outline.Name)
	}
	for _, section := range outline.Sections {
		fmt.Fprintf(out, "\n[%s] %s\n", section.Kind, section.Heading)
		for _, line := range section.Lines {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}
