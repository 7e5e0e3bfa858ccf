package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Product is one catalog entry: a name and its price variants in baht,
// in display order
type Product struct {
	Name     string `yaml:"name" json:"name"`
	Variants []int  `yaml:"variants" json:"variants"`
}

// Catalog is the ordered product list. It is loaded once at startup and
// shared read-only across all requests; nothing mutates it afterwards.
type Catalog struct {
	Products []Product `yaml:"products" json:"products"`
}

// DefaultCatalog returns the built-in product list used when no catalog
// file is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{Products: []Product{
		{Name: "Shirt", Variants: []int{180, 200, 250, 300}},
		{Name: "Pant", Variants: []int{180, 200, 250, 300, 350, 390}},
		{Name: "Short", Variants: []int{300, 290, 250, 230, 200}},
		{Name: "Skirt", Variants: []int{600, 550, 500, 450, 400, 350, 300, 290, 250}},
		{Name: "Set", Variants: []int{490, 390, 350}},
		{Name: "Dress", Variants: []int{450, 400, 350, 300, 250}},
		{Name: "Men_Shirt", Variants: []int{490, 450, 400, 390, 350}},
		{Name: "Men_Pant", Variants: []int{590, 550, 500, 490, 450, 400}},
		{Name: "Men_Short", Variants: []int{390, 350, 300}},
	}}
}

// LoadCatalog builds the catalog for this process: the YAML file at path if
// given, the built-in list otherwise. The result is validated either way.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}
	return &cat, nil
}

// Validate checks catalog invariants: at least one product, unique names,
// and per product at least one positive, non-repeating price variant.
func (c *Catalog) Validate() error {
	if len(c.Products) == 0 {
		return fmt.Errorf("catalog has no products")
	}
	names := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.Name == "" {
			return fmt.Errorf("product with empty name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate product name: %s", p.Name)
		}
		names[p.Name] = true

		if len(p.Variants) == 0 {
			return fmt.Errorf("product %s has no price variants", p.Name)
		}
		seen := make(map[int]bool, len(p.Variants))
		for _, price := range p.Variants {
			if price <= 0 {
				return fmt.Errorf("product %s has non-positive price %d", p.Name, price)
			}
			if seen[price] {
				return fmt.Errorf("product %s lists price %d twice", p.Name, price)
			}
			seen[price] = true
		}
	}
	return nil
}

// Has reports whether the (product, price) pair exists in the catalog
func (c *Catalog) Has(product string, price int) bool {
	for _, p := range c.Products {
		if p.Name != product {
			continue
		}
		for _, v := range p.Variants {
			if v == price {
				return true
			}
		}
	}
	return false
}
