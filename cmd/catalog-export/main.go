package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Apurer/brtx-marketplace/internal/app/api"
	markethttpmapper "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/adapters/http/mapper"
	platformobservability "github.com/Apurer/brtx-marketplace/internal/platform/observability"
)

func main() {
	app := &cli.App{
		Name:  "catalog-export",
		Usage: "read the on-chain product catalog and write it as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "-", Usage: "output file, - for stdout"},
			&cli.DurationFlag{Name: "timeout", Value: 2 * time.Minute, Usage: "overall deadline for the catalog read"},
			&cli.BoolFlag{Name: "metrics", Usage: "log counter totals after the export"},
		},
		Action: export,
	}
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatalf("catalog export failed: %v", err)
	}
}

func export(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	instruments, shutdown, err := platformobservability.InitWithLogOutput(ctx, "brtx-catalog-export", os.Stderr)
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	service, cleanup, err := api.NewMarketplaceService(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	products, err := service.ListProducts(ctx)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(c.String("out"))
	if err != nil {
		return err
	}
	defer closeOut()
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(markethttpmapper.FromDomainProducts(products, cfg.TokenDecimals)); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	logger.Info("catalog exported", slog.Int("count", len(products)), slog.String("out", c.String("out")))

	if c.Bool("metrics") {
		totals, err := instruments.CounterTotals(ctx)
		if err != nil {
			return fmt.Errorf("collect metrics: %w", err)
		}
		for name, total := range totals {
			logger.Info("metric", slog.String("name", name), slog.Int64("total", total))
		}
	}
	return nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
