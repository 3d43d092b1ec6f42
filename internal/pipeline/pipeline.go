// Package pipeline wires the analysis stages end to end: image
// normalization, text recognition, document parsing, categorization,
// clustering and series aggregation. Each document kind has one entry
// point returning the parsed records, the CSV projection and the chart
// series for that kind.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/findoc-insights/internal/categorize"
	"github.com/FACorreiaa/findoc-insights/internal/cluster"
	"github.com/FACorreiaa/findoc-insights/internal/docimage"
	"github.com/FACorreiaa/findoc-insights/internal/extract"
	"github.com/FACorreiaa/findoc-insights/internal/ingest"
	"github.com/FACorreiaa/findoc-insights/internal/ocr"
	"github.com/FACorreiaa/findoc-insights/internal/paymentsfeed"
	"github.com/FACorreiaa/findoc-insights/internal/pdftable"
	"github.com/FACorreiaa/findoc-insights/internal/projection"
	"github.com/FACorreiaa/findoc-insights/internal/visualize"
)

// DocumentType selects the parser applied to recognized text.
type DocumentType string

const (
	DocPayslip       DocumentType = "payslip"
	DocProfitLoss    DocumentType = "profit-loss"
	DocInvoice       DocumentType = "invoice"
	DocBankStatement DocumentType = "bank-statement"
)

// ParseDocumentType validates a document type name from the CLI.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocPayslip, DocProfitLoss, DocInvoice, DocBankStatement:
		return DocumentType(s), nil
	}
	return "", fmt.Errorf("pipeline: unknown document type %q", s)
}

// Pipeline runs document analyses. Construct with New.
type Pipeline struct {
	logger      *slog.Logger
	recognizer  ocr.Recognizer
	categories  *categorize.Table
	clusterOpts cluster.Options
}

func New(logger *slog.Logger, recognizer ocr.Recognizer, categories *categorize.Table, clusterOpts cluster.Options) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if categories == nil {
		categories = categorize.Default()
	}
	return &Pipeline{
		logger:      logger,
		recognizer:  recognizer,
		categories:  categories,
		clusterOpts: clusterOpts,
	}
}

// PayslipResult carries parsed earnings plus their projection and series.
type PayslipResult struct {
	Earnings   map[string]decimal.Decimal
	Projection *projection.Projection
	Series     []visualize.CategoryTotal
}

type ProfitLossResult struct {
	Entries    []extract.ExpenseEntry
	Projection *projection.Projection
	Series     []visualize.CategoryTotal
}

type InvoiceResult struct {
	Items      []extract.InvoiceLineItem
	Projection *projection.Projection
	Series     []visualize.CategoryTotal
}

type BankStatementResult struct {
	Transactions []extract.BankTransaction
	Projection   *projection.Projection
	Series       []visualize.CategoryTotal
}

type ClusterResult struct {
	Assignments []cluster.Assignment
	Centroids   []float64
	Projection  *projection.Projection
	Counts      []visualize.TierCount
}

type PaymentsFeedResult struct {
	Records []paymentsfeed.Record
	Series  []visualize.CategoryTotal
}

// AnalyzePayslip recognizes a payslip image and aggregates its earnings.
func (p *Pipeline) AnalyzePayslip(ctx context.Context, r io.Reader) (*PayslipResult, error) {
	text, err := p.recognizeDocument(ctx, DocPayslip, r)
	if err != nil {
		return nil, err
	}

	earnings, err := extract.ParsePayslip(text)
	if err != nil {
		return nil, err
	}
	p.logger.Info("payslip parsed", slog.Int("earnings", len(earnings)))

	proj, err := projection.Payslip(earnings)
	if err != nil {
		return nil, err
	}
	return &PayslipResult{
		Earnings:   earnings,
		Projection: proj,
		Series:     visualize.EarningsDistribution(earnings),
	}, nil
}

// AnalyzeProfitLoss recognizes a profit and loss statement image and
// aggregates its expense section.
func (p *Pipeline) AnalyzeProfitLoss(ctx context.Context, r io.Reader) (*ProfitLossResult, error) {
	text, err := p.recognizeDocument(ctx, DocProfitLoss, r)
	if err != nil {
		return nil, err
	}

	entries, err := extract.ParseProfitLoss(text)
	if err != nil {
		return nil, err
	}
	p.logger.Info("profit and loss parsed", slog.Int("entries", len(entries)))

	proj, err := projection.ProfitLoss(entries)
	if err != nil {
		return nil, err
	}
	return &ProfitLossResult{
		Entries:    entries,
		Projection: proj,
		Series:     visualize.ExpenseDistribution(entries),
	}, nil
}

// AnalyzeInvoice recognizes an invoice image and aggregates its line items.
func (p *Pipeline) AnalyzeInvoice(ctx context.Context, r io.Reader) (*InvoiceResult, error) {
	text, err := p.recognizeDocument(ctx, DocInvoice, r)
	if err != nil {
		return nil, err
	}

	items, err := extract.ParseInvoice(text)
	if err != nil {
		return nil, err
	}
	p.logger.Info("invoice parsed", slog.Int("line_items", len(items)))

	proj, err := projection.Invoice(items)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{
		Items:      items,
		Projection: proj,
		Series:     visualize.InvoiceTotals(items),
	}, nil
}

// AnalyzeBankStatement extracts the table from a statement PDF,
// categorizes transactions and aggregates spending by category.
func (p *Pipeline) AnalyzeBankStatement(ctx context.Context, path string) (*BankStatementResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := pdftable.ExtractRows(path)
	if err != nil {
		return nil, err
	}

	txs, err := extract.ParseBankStatement(rows, p.categories)
	if err != nil {
		return nil, err
	}
	p.logger.Info("bank statement parsed",
		slog.String("path", path),
		slog.Int("transactions", len(txs)))

	proj, err := projection.BankStatement(txs)
	if err != nil {
		return nil, err
	}
	return &BankStatementResult{
		Transactions: txs,
		Projection:   proj,
		Series:       visualize.SpendingByCategory(txs),
	}, nil
}

// ClusterCSV reads transaction amounts from CSV and assigns magnitude tiers.
func (p *Pipeline) ClusterCSV(ctx context.Context, r io.Reader) (*ClusterResult, error) {
	txs, err := ingest.ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return p.clusterTransactions(ctx, txs)
}

// ClusterXLSX reads transaction amounts from a spreadsheet and assigns
// magnitude tiers.
func (p *Pipeline) ClusterXLSX(ctx context.Context, r io.Reader) (*ClusterResult, error) {
	txs, err := ingest.ReadXLSX(r)
	if err != nil {
		return nil, err
	}
	return p.clusterTransactions(ctx, txs)
}

func (p *Pipeline) clusterTransactions(ctx context.Context, txs []cluster.Transaction) (*ClusterResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := cluster.AssignTiers(txs, p.clusterOpts)
	if err != nil {
		return nil, err
	}
	p.logger.Info("amounts clustered",
		slog.Int("transactions", len(txs)),
		slog.Int("tiers", len(result.Centroids)))

	proj, err := projection.Clustered(result.Assignments)
	if err != nil {
		return nil, err
	}
	return &ClusterResult{
		Assignments: result.Assignments,
		Centroids:   result.Centroids,
		Projection:  proj,
		Counts:      visualize.TierCounts(result.Assignments),
	}, nil
}

// AnalyzePaymentsFeed parses an account statement API response and
// aggregates payments by mode.
func (p *Pipeline) AnalyzePaymentsFeed(ctx context.Context, r io.Reader) (*PaymentsFeedResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := paymentsfeed.Parse(r)
	if err != nil {
		return nil, err
	}
	p.logger.Info("payments feed parsed", slog.Int("payments", len(records)))

	return &PaymentsFeedResult{
		Records: records,
		Series:  visualize.PaymentModeTotals(records),
	}, nil
}

// recognizeDocument normalizes the image and runs OCR over the binarized
// copy. A scratch directory keeps the preprocessed artifact for the
// duration of the run and is removed on every exit path.
func (p *Pipeline) recognizeDocument(ctx context.Context, kind DocumentType, r io.Reader) (string, error) {
	// Normalize output is already two-level; it goes to the engine as-is.
	bin, err := docimage.Normalize(r)
	if err != nil {
		return "", err
	}

	scratch := filepath.Join(os.TempDir(), "findoc-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o700); err != nil {
		return "", fmt.Errorf("pipeline: scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			p.logger.Warn("scratch cleanup failed", slog.String("dir", scratch), slog.Any("error", err))
		}
	}()

	artifact := filepath.Join(scratch, string(kind)+".png")
	if err := writePNG(artifact, bin); err != nil {
		p.logger.Warn("artifact write failed", slog.String("path", artifact), slog.Any("error", err))
	} else {
		p.logger.Debug("preprocessed image written", slog.String("path", artifact))
	}

	text, err := p.recognizer.Recognize(ctx, bin, ocr.LayoutUniformBlock)
	if err != nil {
		return "", fmt.Errorf("pipeline: recognize %s: %w", kind, err)
	}
	return text, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
