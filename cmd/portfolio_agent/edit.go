package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/editor"
	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/generation"
	"github.com/jonathan/portfolio-builder/internal/session"
	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type editOptions struct {
	in       string
	out      string
	template string
	outDir   string
}

var editOpts editOptions

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a portfolio document in the terminal",
	Long: "Open an interactive editor over a document JSON with a live preview. " +
		"Press s to write the document back, e to export HTML and g to generate the focused bio or description.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return editDocument(commandContext(cmd), cmd.ErrOrStderr(), editOpts)
	},
}

func init() {
	editCmd.Flags().StringVarP(&editOpts.in, "in", "i", "", "Path to the document JSON")
	editCmd.Flags().StringVarP(&editOpts.out, "out", "o", "", "Where saves are written (overwrites --in when empty)")
	editCmd.Flags().StringVarP(&editOpts.template, "template", "t", "", "Template name (config default when empty)")
	editCmd.Flags().StringVar(&editOpts.outDir, "out-dir", "", "Export directory (config output_dir when empty)")
	_ = editCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(editCmd)
}

// editSession is everything the editor needs around one document
type editSession struct {
	session    *session.Session
	controller *augment.Controller
	callbacks  editor.Callbacks
	def        *templates.Definition
	saved      atomic.Uint64
}

// newEditSession wires a session, an optional controller and the save/export side effects.
// gen may be nil, in which case generation reports that it is not configured.
func newEditSession(ctx context.Context, opts editOptions, doc types.ResumeDocument, gen augment.Generator, log *zap.Logger) (*editSession, error) {
	templateName := opts.template
	if templateName == "" {
		templateName = cfg.Template
	}
	def, err := templates.Lookup(templateName)
	if err != nil {
		return nil, err
	}
	dir := opts.outDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	out := opts.out
	if out == "" {
		out = opts.in
	}

	es := &editSession{session: session.New(doc, templateName, log), def: def}
	if gen != nil {
		es.controller = augment.NewController(es.session, gen, log)
		es.controller.SetTimeout(cfg.GenerateTimeout)
	}

	exportFn := func(snapshot types.ResumeDocument) (string, error) {
		path, _, err := renderAndSave(ctx, snapshot, es.session.Template(), "html", export.FileSink{Dir: dir})
		return path, err
	}
	es.callbacks = editor.SessionCallbacks(es.session, es.controller, exportFn)
	es.callbacks.Save = func() (string, error) {
		current := es.session.Current()
		if err := writeDocument(io.Discard, out, current.Document); err != nil {
			return "", err
		}
		es.saved.Store(current.Version)
		return out, nil
	}
	return es, nil
}

// unsaved reports whether the document changed after the last save
func (es *editSession) unsaved() bool {
	return es.session.Version() != es.saved.Load()
}

func editDocument(ctx context.Context, stderr io.Writer, opts editOptions) error {
	doc, err := readDocument(opts.in)
	if err != nil {
		return err
	}

	// Log lines would tear the alternate screen
	quiet := zap.NewNop()

	var gen augment.Generator
	if client, err := newClient(ctx, cfg); err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: generation disabled: %v\n", err)
	} else {
		defer func() { _ = client.Close() }()
		gen = generation.NewService(client, quiet)
	}

	es, err := newEditSession(ctx, opts, doc, gen, quiet)
	if err != nil {
		return err
	}

	model, err := editor.New(es.def, es.callbacks)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	events, unsubscribe := es.session.Subscribe()
	go func() {
		for range events {
			program.Send(editor.DocumentChangedMsg{})
		}
	}()
	if es.controller != nil {
		es.controller.OnComplete(func(r augment.Result) {
			program.Send(editor.GenerationDoneMsg{Target: r.Target, Err: r.Err})
		})
	}

	_, runErr := program.Run()
	unsubscribe()
	if es.controller != nil {
		es.controller.Wait()
	}
	if runErr != nil {
		return fmt.Errorf("editor failed: %w", runErr)
	}

	if es.unsaved() {
		_, _ = fmt.Fprintln(stderr, "Unsaved changes were discarded (press s to save before quitting)")
	}
	logger.Debug("editor closed", zap.Uint64("version", es.session.Version()))
	return nil
}
