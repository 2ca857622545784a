package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/retrogameshop/storefront-platform/internal/models"
)

// Catalog is the read-only, in-memory product collection. It is loaded once at
// startup; nothing mutates it afterwards, so lookups need no locking.
type Catalog struct {
	products []models.Product
	bySKU    map[string]models.Product
}

// Load reads the product catalog from a JSON file. Entries that fail the shape
// checks (missing sku, negative price) are skipped with a warning instead of
// failing the whole load.
func Load(path string) (*Catalog, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var raw []models.Product
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(raw), nil
}

// New builds a catalog from an already-decoded product slice, filtering out
// malformed entries.
func New(products []models.Product) *Catalog {

	c := &Catalog{
		bySKU: make(map[string]models.Product, len(products)),
	}

	for _, p := range products {

		if p.SKU == "" || p.Price < 0 {
			slog.Warn("Skipping malformed catalog entry", slog.String("sku", p.SKU), slog.Float64("price", p.Price))
			continue
		}

		if _, exists := c.bySKU[p.SKU]; exists {
			slog.Warn("Skipping duplicate catalog sku", slog.String("sku", p.SKU))
			continue
		}

		c.products = append(c.products, p)
		c.bySKU[p.SKU] = p
	}

	return c
}

func (c *Catalog) All() []models.Product {
	return c.products
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) BySKU(sku string) (models.Product, bool) {
	p, ok := c.bySKU[sku]

	return p, ok
}

func (c *Catalog) ByPlatform(platform string) []models.Product {

	var out []models.Product

	for _, p := range c.products {
		if p.Platform == platform {
			out = append(out, p)
		}
	}

	return out
}

// Search matches the query case-insensitively against name, platform and
// genre.
func (c *Catalog) Search(query string) []models.Product {

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []models.Product

	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Platform), q) ||
			strings.Contains(strings.ToLower(p.Genre), q) {
			out = append(out, p)
		}
	}

	return out
}

// Platforms returns each platform with its product count, busiest first.
func (c *Catalog) Platforms() []models.PlatformCount {

	counts := make(map[string]int)

	for _, p := range c.products {
		counts[p.Platform]++
	}

	out := make([]models.PlatformCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.PlatformCount{Name: name, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Name < out[j].Name
	})

	return out
}

func (c *Catalog) Genres() []string {

	seen := make(map[string]struct{})

	for _, p := range c.products {
		if p.Genre != "" {
			seen[p.Genre] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}

	sort.Strings(out)

	return out
}

// EffectivePrice returns the sale price when one is set below the base price.
func EffectivePrice(p models.Product) float64 {

	if p.SalePrice != nil && *p.SalePrice > 0 && *p.SalePrice < p.Price {
		return *p.SalePrice
	}

	return p.Price
}
