package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/generation"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/session"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type generateOptions struct {
	in          string
	out         string
	targets     []string
	concurrency int
}

var generateOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the bio and entry descriptions of a document",
	Long: "Generate replacement text for the bio and every work experience and project description " +
		"concurrently, then write the augmented document. Use --target to limit the run, e.g. " +
		"--target bio --target project[0].",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return generateDocument(commandContext(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr(), generateOpts)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOpts.in, "in", "i", "", "Path to the document JSON")
	generateCmd.Flags().StringVarP(&generateOpts.out, "out", "o", "", "Path to the output document JSON (overwrites --in when empty)")
	generateCmd.Flags().StringArrayVar(&generateOpts.targets, "target", nil, "Target to generate: bio, workExperience[i] or project[i] (repeatable; all when omitted)")
	generateCmd.Flags().IntVar(&generateOpts.concurrency, "concurrency", 4, "Maximum generations running at once")
	_ = generateCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(generateCmd)
}

// allTargets lists the bio and every entry description of doc
func allTargets(doc types.ResumeDocument) []augment.Target {
	targets := []augment.Target{augment.Bio()}
	for i := range doc.WorkExperience {
		targets = append(targets, augment.WorkExperience(i))
	}
	for i := range doc.Projects {
		targets = append(targets, augment.Project(i))
	}
	return targets
}

func generateDocument(ctx context.Context, stdout, stderr io.Writer, opts generateOptions) error {
	doc, err := readDocument(opts.in)
	if err != nil {
		return err
	}

	targets := allTargets(doc)
	if len(opts.targets) > 0 {
		targets = make([]augment.Target, 0, len(opts.targets))
		for _, value := range opts.targets {
			target, err := augment.ParseTarget(value)
			if err != nil {
				return err
			}
			targets = append(targets, target)
		}
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	sess := session.New(doc, cfg.Template, logger)
	ctrl := augment.NewController(sess, generation.NewService(client, logger), logger)
	ctrl.SetTimeout(cfg.GenerateTimeout)
	defer ctrl.Wait()

	printer := observability.NewPrinter(stderr)
	g, gCtx := errgroup.WithContext(ctx)
	if opts.concurrency > 0 {
		g.SetLimit(opts.concurrency)
	}

	for _, target := range targets {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			task, err := ctrl.Start(gCtx, target)
			if err != nil {
				return fmt.Errorf("%s: %w", target, err)
			}
			result := task.Result()
			if result.Err != nil {
				return fmt.Errorf("%s: %w", target, result.Err)
			}
			logger.Debug("generation applied", zap.Stringer("target", target), zap.Bool("applied", result.Applied))
			if cfg.Verbose {
				printer.PrintGeneration(target.String(), result.Text)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	out := opts.out
	if out == "" {
		out = opts.in
	}
	if err := writeDocument(stdout, out, sess.Snapshot()); err != nil {
		return err
	}
	if out != "-" {
		_, _ = fmt.Fprintf(stdout, "Generated %d targets\nOutput: %s\n", len(targets), out)
	}
	return nil
}
