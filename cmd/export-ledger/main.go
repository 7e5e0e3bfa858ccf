package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/config"
	"github.com/paothinnapat/sales-tracker/internal/export"
	"github.com/paothinnapat/sales-tracker/internal/sheets"
)

func main() {
	out := flag.String("out", "ledger.xlsx", "path of the .xlsx workbook to write")
	flag.Parse()

	// Load configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := sheets.NewClient(cfg.Sheets, logger)

	fmt.Printf("Exporting ledger to %s...\n", *out)
	count, err := export.WriteXLSX(context.Background(), client, *out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d rows.\n", count)
}
