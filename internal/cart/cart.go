package cart

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paothinnapat/sales-tracker/internal/domain"
	pkgerrors "github.com/paothinnapat/sales-tracker/pkg/errors"
)

type key struct {
	product string
	price   int
}

// Cart holds the sales form state: the sale date and store plant, and a
// quantity per (product, price) variant. The running total is recomputed
// eagerly on every change so it always matches the visible quantities.
type Cart struct {
	mu         sync.Mutex
	catalog    *domain.Catalog
	submitter  Submitter
	date       string
	store      domain.Store
	quantities map[key]int
	total      int
	submitting bool
}

// New creates an empty cart for today's date and the default store plant
func New(catalog *domain.Catalog, submitter Submitter) *Cart {
	return &Cart{
		catalog:    catalog,
		submitter:  submitter,
		date:       time.Now().Format("2006-01-02"),
		store:      domain.DefaultStore,
		quantities: make(map[key]int),
	}
}

// SetDate sets the sale date (ISO calendar date string)
func (c *Cart) SetDate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.date = date
}

// SetStore sets the store plant
func (c *Cart) SetStore(store domain.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = store
}

// Adjust adds delta to the quantity of one variant, clamping at zero.
// The stepper controls use it with deltas of ±1 and ±10; there is no upper
// bound.
func (c *Cart) Adjust(product string, price, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key{product, price}
	qty := c.quantities[k] + delta
	if qty < 0 {
		qty = 0
	}
	c.quantities[k] = qty
	c.recomputeTotal()
}

// SetExact replaces the quantity of one variant with the parsed raw input.
// Unparseable input counts as zero; negative values clamp to zero.
func (c *Cart) SetExact(product string, price int, raw string) {
	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 0 {
		qty = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantities[key{product, price}] = qty
	c.recomputeTotal()
}

// Quantity returns the current quantity of one variant
func (c *Cart) Quantity(product string, price int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantities[key{product, price}]
}

// Total returns the running total in baht
func (c *Cart) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// recomputeTotal sums quantity x price over the full catalog. Must be called
// with the lock held after every quantity change.
func (c *Cart) recomputeTotal() {
	total := 0
	for _, p := range c.catalog.Products {
		for _, price := range p.Variants {
			total += c.quantities[key{p.Name, price}] * price
		}
	}
	c.total = total
}

// Build materializes the submission: one line item per variant with a
// positive quantity, in catalog-and-variant order regardless of input order.
// The total is summed from the emitted subtotals and checked against the
// running total, which the two can only disagree on if state was corrupted.
func (c *Cart) Build() (*domain.SaleSubmission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var items []domain.LineItem
	total := 0
	for _, p := range c.catalog.Products {
		for _, price := range p.Variants {
			qty := c.quantities[key{p.Name, price}]
			if qty <= 0 {
				continue
			}
			subtotal := qty * price
			items = append(items, domain.LineItem{
				Product:  p.Name,
				Price:    price,
				Quantity: qty,
				Subtotal: subtotal,
			})
			total += subtotal
		}
	}
	if total != c.total {
		return nil, fmt.Errorf("cart total out of sync: built %d, running %d", total, c.total)
	}

	return &domain.SaleSubmission{
		Date:  c.date,
		Store: string(c.store),
		Items: items,
		Total: total,
	}, nil
}

// Submit builds and sends the submission. An empty cart fails locally with a
// validation error and never reaches the network. Submission is single-flight:
// while one request is outstanding further calls fail with ErrSubmitInFlight.
// On success the quantities are cleared; on failure the cart is untouched so
// the clerk can retry.
func (c *Cart) Submit(ctx context.Context) (int, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return 0, pkgerrors.ErrSubmitInFlight
	}
	c.submitting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	sub, err := c.Build()
	if err != nil {
		return 0, err
	}
	if len(sub.Items) == 0 {
		return 0, &pkgerrors.ErrValidation{Message: "at least one item required"}
	}
	sub.SubmissionID = uuid.NewString()

	count, err := c.submitter.Submit(ctx, sub)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.quantities = make(map[key]int)
	c.total = 0
	c.mu.Unlock()
	return count, nil
}
