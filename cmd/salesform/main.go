package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/cart"
	"github.com/paothinnapat/sales-tracker/internal/domain"
	"github.com/paothinnapat/sales-tracker/internal/receipt"
	"github.com/paothinnapat/sales-tracker/internal/service"
)

var (
	serverURL   string
	saleDate    string
	saleStore   string
	items       []string
	receiptPath string
	showCatalog bool
)

var rootCmd = &cobra.Command{
	Use:   "salesform",
	Short: "Record a day's sales against the sales tracker server",
	Long: `salesform is the terminal counterpart of the sales entry form.
It fetches the product catalog from the server, builds a cart from --item
flags, prints the ticket, and submits it.

Example:
  salesform --date 2024-01-01 --store 410 --item Shirt:180:2 --item Pant:200:1`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the sales tracker server")
	rootCmd.Flags().StringVar(&saleDate, "date", time.Now().Format("2006-01-02"), "sale date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&saleStore, "store", string(domain.DefaultStore), "store plant")
	rootCmd.Flags().StringArrayVar(&items, "item", nil, "line item as Product:Price:Quantity (repeatable)")
	rootCmd.Flags().StringVar(&receiptPath, "receipt", "", "also write a PDF ticket to this path")
	rootCmd.Flags().BoolVar(&showCatalog, "catalog", false, "print the catalog and exit")
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	catalog, err := fetchCatalog(serverURL)
	if err != nil {
		return fmt.Errorf("could not fetch catalog from %s: %w", serverURL, err)
	}

	if showCatalog {
		printCatalog(catalog)
		return nil
	}

	if !domain.Store(saleStore).IsValid() {
		return fmt.Errorf("unknown store plant %q (known: %v)", saleStore, domain.Stores)
	}
	if len(items) == 0 {
		return fmt.Errorf("at least one --item is required")
	}

	c := cart.New(catalog, cart.NewHTTPSubmitter(serverURL, logger))
	c.SetDate(saleDate)
	c.SetStore(domain.Store(saleStore))

	for _, spec := range items {
		product, price, qty, err := parseItem(spec)
		if err != nil {
			return err
		}
		if !catalog.Has(product, price) {
			return fmt.Errorf("no catalog variant %s at %d", product, price)
		}
		c.SetExact(product, price, qty)
	}

	sub, err := c.Build()
	if err != nil {
		return err
	}
	printTicket(sub)

	if receiptPath != "" {
		f, err := os.Create(receiptPath)
		if err != nil {
			return fmt.Errorf("could not create receipt file: %w", err)
		}
		defer f.Close()
		if err := receipt.Render(sub, f); err != nil {
			return fmt.Errorf("could not render receipt: %w", err)
		}
		fmt.Printf("Receipt written to %s\n", receiptPath)
	}

	count, err := c.Submit(context.Background())
	if err != nil {
		return fmt.Errorf("recording sale: %w", err)
	}
	fmt.Printf("Sale recorded successfully: %d rows appended.\n", count)
	return nil
}

// parseItem splits a Product:Price:Quantity spec. Quantity stays a raw
// string; the cart applies the usual parse-and-clamp rules to it.
func parseItem(spec string) (product string, price int, qty string, err error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return "", 0, "", fmt.Errorf("invalid --item %q, want Product:Price:Quantity", spec)
	}
	price, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, "", fmt.Errorf("invalid price in --item %q: %w", spec, err)
	}
	return parts[0], price, parts[2], nil
}

func fetchCatalog(baseURL string) (*domain.Catalog, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(strings.TrimSuffix(baseURL, "/") + "/api/catalog")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned %d", resp.StatusCode)
	}
	var cr service.CatalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}
	return &domain.Catalog{Products: cr.Products}, nil
}

func printCatalog(catalog *domain.Catalog) {
	for _, p := range catalog.Products {
		fmt.Printf("%-10s", p.Name)
		for _, v := range p.Variants {
			fmt.Printf(" %d", v)
		}
		fmt.Println()
	}
	fmt.Printf("Stores: %v\n", domain.Stores)
}

func printTicket(sub *domain.SaleSubmission) {
	fmt.Printf("Date: %s  Store Plant: %s\n", sub.Date, sub.Store)
	for _, item := range sub.Items {
		fmt.Printf("  %-10s %4d x %-3d = %6d\n", item.Product, item.Price, item.Quantity, item.Subtotal)
	}
	fmt.Printf("Total: %d THB\n", sub.Total)
}
