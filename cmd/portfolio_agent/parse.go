package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type parseOptions struct {
	in   string
	out  string
	meta string
}

var parseOpts parseOptions

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a résumé file into portfolio document JSON",
	Long:  "Extract the text of a DOCX, TXT or MD résumé, structure it with the model and write the normalized portfolio document.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return parseResume(commandContext(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr(), parseOpts)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseOpts.in, "in", "i", "", "Path to the résumé file (.docx, .txt or .md)")
	parseCmd.Flags().StringVarP(&parseOpts.out, "out", "o", "", "Path to the output document JSON (stdout when empty)")
	parseCmd.Flags().StringVar(&parseOpts.meta, "meta", "", "Also write file metadata (size, hash, word count) as JSON to this path")
	_ = parseCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(parseCmd)
}

func parseResume(ctx context.Context, stdout, stderr io.Writer, opts parseOptions) error {
	content, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("failed to read résumé: %w", err)
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	parser := ingestion.NewParser(client, cfg.MaxUploadBytes, logger)
	record, meta, err := parser.Parse(ctx, filepath.Base(opts.in), content)
	if err != nil {
		return fmt.Errorf("failed to parse résumé: %w", err)
	}
	logger.Info("résumé parsed", meta.Fields()...)
	if opts.meta != "" {
		data, err := meta.ToJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.meta, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
	}

	doc := portfolio.FromRecord(*record)
	if cfg.Verbose {
		observability.NewPrinter(stderr).PrintDocument(&doc)
	}

	if err := writeDocument(stdout, opts.out, doc); err != nil {
		return err
	}
	if opts.out != "" && opts.out != "-" {
		logger.Debug("document written", zap.String("path", opts.out))
		_, _ = fmt.Fprintf(stdout, "Parsed %s (%d words)\nOutput: %s\n", opts.in, record.WordCount, opts.out)
	}
	return nil
}
