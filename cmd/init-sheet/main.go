package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/config"
	"github.com/paothinnapat/sales-tracker/internal/domain"
	"github.com/paothinnapat/sales-tracker/internal/sheets"
)

func main() {
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

	fmt.Println("Ensuring ledger header row...")
	if err := client.EnsureHeader(context.Background(), domain.SheetHeader); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to ensure header row: %v\n", err)
		os.Exit(1)
	}

	header, err := client.HeaderRow(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read back header row: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Header row in place: %v\n", header)
}
