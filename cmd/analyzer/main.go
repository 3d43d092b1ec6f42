package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/FACorreiaa/findoc-insights/internal/mcc"
	"github.com/FACorreiaa/findoc-insights/internal/pdftable"
	"github.com/FACorreiaa/findoc-insights/internal/pipeline"
	"github.com/FACorreiaa/findoc-insights/internal/projection"
	"github.com/FACorreiaa/findoc-insights/internal/visualize"
	"github.com/FACorreiaa/findoc-insights/pkg/config"
)

func main() {
	var (
		docType = flag.String("type", "", "analysis to run: payslip, profit-loss, invoice, bank-statement, cluster, payments-feed, mcc-lookup")
		input   = flag.String("in", "", "input file path")
		query   = flag.String("query", "", "lookup query (mcc-lookup only)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if *docType == "" || *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	deps, err := InitDependencies(cfg, logger)
	if err != nil {
		logger.Error("init failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, deps, *docType, *input, *query); err != nil {
		logger.Error("analysis failed",
			slog.String("type", *docType),
			slog.String("input", *input),
			slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, deps *Dependencies, docType, input, query string) error {
	runID := uuid.New()
	deps.Logger.Info("run started",
		slog.String("run_id", runID.String()),
		slog.String("type", docType),
		slog.String("input", input))

	switch docType {
	case string(pipeline.DocPayslip):
		return withInput(input, func(f *os.File) error {
			res, err := deps.Pipeline.AnalyzePayslip(ctx, f)
			if err != nil {
				return err
			}
			return report(ctx, deps, runID, "payslip", res.Projection, res.Series)
		})

	case string(pipeline.DocProfitLoss):
		return withInput(input, func(f *os.File) error {
			res, err := deps.Pipeline.AnalyzeProfitLoss(ctx, f)
			if err != nil {
				return err
			}
			return report(ctx, deps, runID, "profit-loss", res.Projection, res.Series)
		})

	case string(pipeline.DocInvoice):
		return withInput(input, func(f *os.File) error {
			res, err := deps.Pipeline.AnalyzeInvoice(ctx, f)
			if err != nil {
				return err
			}
			return report(ctx, deps, runID, "invoice", res.Projection, res.Series)
		})

	case string(pipeline.DocBankStatement):
		res, err := deps.Pipeline.AnalyzeBankStatement(ctx, input)
		if err != nil {
			return err
		}
		return report(ctx, deps, runID, "bank-statement", res.Projection, res.Series)

	case "cluster":
		return withInput(input, func(f *os.File) error {
			var res *pipeline.ClusterResult
			var err error
			if strings.EqualFold(filepath.Ext(input), ".xlsx") {
				res, err = deps.Pipeline.ClusterXLSX(ctx, f)
			} else {
				res, err = deps.Pipeline.ClusterCSV(ctx, f)
			}
			if err != nil {
				return err
			}
			for _, tier := range res.Counts {
				deps.Logger.Info("tier",
					slog.String("label", tier.Label),
					slog.Int("transactions", tier.Count))
			}
			return writeProjection(ctx, deps, runID, "clustered", res.Projection)
		})

	case "payments-feed":
		return withInput(input, func(f *os.File) error {
			res, err := deps.Pipeline.AnalyzePaymentsFeed(ctx, f)
			if err != nil {
				return err
			}
			logSeries(deps.Logger, res.Series)
			return nil
		})

	case "mcc-lookup":
		return lookupMCC(deps, input, query)

	default:
		return fmt.Errorf("unknown analysis type %q", docType)
	}
}

// lookupMCC builds a code directory from a PDF table or plain text file
// and resolves the query against it.
func lookupMCC(deps *Dependencies, input, query string) error {
	if query == "" {
		return fmt.Errorf("mcc-lookup requires -query")
	}

	var dir *mcc.Directory
	if strings.EqualFold(filepath.Ext(input), ".pdf") {
		rows, err := pdftable.ExtractRows(input)
		if err != nil {
			return err
		}
		dir, err = mcc.ParseRows(rows)
		if err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		dir, err = mcc.ParseText(string(data))
		if err != nil {
			return err
		}
	}

	entry, err := dir.Lookup(query)
	if err != nil {
		return err
	}
	deps.Logger.Info("mcc match",
		slog.String("code", entry.Code),
		slog.String("description", entry.Description))
	fmt.Printf("%s\t%s\n", entry.Code, entry.Description)
	return nil
}

func report(ctx context.Context, deps *Dependencies, runID uuid.UUID, name string, proj *projection.Projection, series []visualize.CategoryTotal) error {
	logSeries(deps.Logger, series)
	return writeProjection(ctx, deps, runID, name, proj)
}

func logSeries(logger *slog.Logger, series []visualize.CategoryTotal) {
	for _, s := range series {
		logger.Info("series",
			slog.String("category", s.Category),
			slog.String("total", s.Total.String()))
	}
}

func writeProjection(ctx context.Context, deps *Dependencies, runID uuid.UUID, name string, proj *projection.Projection) error {
	info, err := deps.Artifacts.Save(ctx, runID, name+".csv", bytes.NewReader(proj.CSV))
	if err != nil {
		return err
	}
	deps.Logger.Info("projection written",
		slog.String("run_id", runID.String()),
		slog.String("artifact", info.Path))
	return nil
}

func withInput(path string, fn func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
