package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type exportOptions struct {
	in       string
	template string
	format   string
	outDir   string
}

var exportOpts exportOptions

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a portfolio document as HTML or PDF",
	Long:  "Render a portfolio document JSON under a template into a self-contained HTML page, or print that page to PDF.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return exportDocument(commandContext(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr(), exportOpts)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOpts.in, "in", "i", "", "Path to the document JSON")
	exportCmd.Flags().StringVarP(&exportOpts.template, "template", "t", "", "Template name (config default when empty)")
	exportCmd.Flags().StringVarP(&exportOpts.format, "format", "f", "html", "Output format: html or pdf")
	exportCmd.Flags().StringVarP(&exportOpts.outDir, "out-dir", "o", "", "Output directory (config output_dir when empty)")
	_ = exportCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(exportCmd)
}

func exportDocument(ctx context.Context, stdout, stderr io.Writer, opts exportOptions) error {
	doc, err := readDocument(opts.in)
	if err != nil {
		return err
	}

	templateName := opts.template
	if templateName == "" {
		templateName = cfg.Template
	}
	dir := opts.outDir
	if dir == "" {
		dir = cfg.OutputDir
	}

	path, size, err := renderAndSave(ctx, doc, templateName, opts.format, export.FileSink{Dir: dir})
	if err != nil {
		return err
	}
	logger.Info("portfolio exported", zap.String("path", path), zap.String("template", templateName))

	if cfg.Verbose {
		html, err := export.Render(doc, templateName)
		if err == nil {
			if outline, err := export.Inspect(html); err == nil {
				observability.NewPrinter(stderr).PrintExport(path, size, outline.Kinds())
			}
		}
	}
	_, _ = fmt.Fprintf(stdout, "Exported %s\n", path)
	return nil
}

// renderAndSave renders doc in format and hands it to sink, returning the saved path and size
func renderAndSave(ctx context.Context, doc types.ResumeDocument, templateName, format string, sink export.Sink) (string, int, error) {
	html, err := export.Render(doc, templateName)
	if err != nil {
		return "", 0, fmt.Errorf("failed to render portfolio: %w", err)
	}

	var content []byte
	var filename string
	switch format {
	case "", "html":
		content, filename = html, export.Filename(doc)
	case "pdf":
		pdf, err := newPrinter(cfg).Print(ctx, html)
		if err != nil {
			return "", 0, fmt.Errorf("failed to print PDF: %w", err)
		}
		content, filename = pdf, export.PDFFilename(doc)
	default:
		return "", 0, fmt.Errorf("unsupported format %q (expected html or pdf)", format)
	}

	path, err := sink.Save(ctx, filename, content)
	if err != nil {
		return "", 0, err
	}
	return path, len(content), nil
}
