package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available portfolio templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listTemplates(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func listTemplates(out io.Writer) error {
	registry, err := templates.Builtin()
	if err != nil {
		return err
	}

	for _, name := range registry.Names() {
		def, err := registry.Lookup(name)
		if err != nil {
			return err
		}

		marker := " "
		if name == cfg.Template {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-10s %s\n", marker, name, def.Description)

		headings := make([]string, 0, len(def.Sections))
		for _, kind := range def.Sections {
			headings = append(headings, def.Heading(kind))
		}
		fmt.Fprintf(out, "  %-10s sections: %s\n", "", strings.Join(headings, " / "))
	}
	return nil
}
