package export

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// DefaultPDFTimeout bounds a single print
const DefaultPDFTimeout = 30 * time.Second

// Printer converts a self-contained HTML export into another format
type Printer interface {
	Print(ctx context.Context, html []byte) ([]byte, error)
}

// PDFPrinter prints HTML to PDF through a headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type PDFPrinter struct {
	ExecPath string // optional Chrome binary; the default lookup is used when empty
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Print loads html into a blank page and returns the printed PDF bytes
func (p *PDFPrinter) Print(ctx context.Context, html []byte) ([]byte, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	logger.Debug("printing export to PDF", zap.Int("html_bytes", len(html)))

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &Error{Stage: StagePrint, Message: "PDF printing failed", Cause: err}
	}

	logger.Debug("printed PDF", zap.Int("pdf_bytes", len(pdf)))
	return pdf, nil
}

