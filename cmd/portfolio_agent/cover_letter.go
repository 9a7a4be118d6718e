package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/generation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type coverLetterOptions struct {
	in      string
	job     string
	jobText string
	out     string
	style   string
	width   int
}

var coverLetterOpts coverLetterOptions

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Generate a cover letter for a job description",
	Long: "Generate a cover letter from a portfolio document and a job description and render it in the terminal. " +
		"With --out the letter is also written to a file: .pdf prints it through headless Chrome, .html writes " +
		"the page, anything else writes the plain text.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return coverLetter(commandContext(cmd), cmd.OutOrStdout(), coverLetterOpts)
	},
}

func init() {
	coverLetterCmd.Flags().StringVarP(&coverLetterOpts.in, "in", "i", "", "Path to the document JSON")
	coverLetterCmd.Flags().StringVarP(&coverLetterOpts.job, "job", "j", "", "Path to a file holding the job description")
	coverLetterCmd.Flags().StringVar(&coverLetterOpts.jobText, "job-text", "", "Job description text")
	coverLetterCmd.Flags().StringVarP(&coverLetterOpts.out, "out", "o", "", "Also write the letter to this file (.pdf, .html or text; a directory gets <name>-cover-letter.md)")
	coverLetterCmd.Flags().StringVar(&coverLetterOpts.style, "style", "auto", "Terminal style: auto, dark, light or notty")
	coverLetterCmd.Flags().IntVar(&coverLetterOpts.width, "width", 80, "Word wrap width")
	_ = coverLetterCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(coverLetterCmd)
}

func coverLetter(ctx context.Context, stdout io.Writer, opts coverLetterOptions) error {
	doc, err := readDocument(opts.in)
	if err != nil {
		return err
	}

	jobDescription := opts.jobText
	if opts.job != "" {
		data, err := os.ReadFile(opts.job)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobDescription = string(data)
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	letter, err := generation.NewService(client, logger).GenerateCoverLetter(ctx, doc, jobDescription)
	if err != nil {
		return err
	}

	rendered, err := renderMarkdown(letter, opts.style, opts.width)
	if err != nil {
		logger.Warn("markdown rendering failed, printing plain text", zap.Error(err))
		rendered = letter + "\n"
	}
	if _, err := io.WriteString(stdout, rendered); err != nil {
		return err
	}

	if opts.out == "" {
		return nil
	}

	out := opts.out
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, export.LetterFilename(doc, "md"))
	}

	var content []byte
	switch strings.ToLower(filepath.Ext(out)) {
	case ".pdf", ".html", ".htm":
		html, err := export.RenderLetter(doc, letter)
		if err != nil {
			return err
		}
		content = html
		if strings.EqualFold(filepath.Ext(out), ".pdf") {
			if content, err = newPrinter(cfg).Print(ctx, html); err != nil {
				return fmt.Errorf("failed to print PDF: %w", err)
			}
		}
	default:
		content = []byte(letter + "\n")
	}

	if err := os.WriteFile(out, content, 0o644); err != nil {
		return fmt.Errorf("failed to write cover letter: %w", err)
	}
	logger.Info("cover letter written", zap.String("path", out))
	return nil
}

// renderMarkdown renders text for the terminal with glamour
func renderMarkdown(text, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(text)
}
