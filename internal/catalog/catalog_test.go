package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retrogameshop/storefront-platform/internal/catalog"
	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func testProducts() []models.Product {
	return []models.Product{
		{SKU: "smb3", Name: "Super Mario Bros. 3", Platform: "NES", Genre: "Platformer", Price: 39.99},
		{SKU: "zelda-oot", Name: "Ocarina of Time", Platform: "N64", Genre: "Adventure", Price: 49.99, SalePrice: floatPtr(44.99)},
		{SKU: "mk64", Name: "Mario Kart 64", Platform: "N64", Genre: "Racing", Price: 34.99},
		{SKU: "snes-console", Name: "SNES Console", Platform: "SNES", Genre: "", Price: 129.99, IsConsole: true},
	}
}

func TestNewFiltersMalformedEntries(t *testing.T) {
	// Arrange
	products := append(testProducts(),
		models.Product{SKU: "", Name: "No SKU", Price: 10},
		models.Product{SKU: "negative", Name: "Negative", Price: -5},
		models.Product{SKU: "smb3", Name: "Duplicate", Price: 20},
	)

	// Act
	cat := catalog.New(products)

	// Assert
	assert.Equal(t, 4, cat.Len())

	smb3, ok := cat.BySKU("smb3")
	require.True(t, ok)
	assert.Equal(t, "Super Mario Bros. 3", smb3.Name, "first entry wins on duplicate sku")
}

func TestLoad(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		path := filepath.Join(t.TempDir(), "products.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"sku":"smb3","name":"Super Mario Bros. 3","platform":"NES","price":39.99}]`), 0o600))

		// Act
		cat, err := catalog.Load(path)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, cat.Len())
	})

	t.Run("Failure - Missing File", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.json")
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

		_, err := catalog.Load(path)
		assert.Error(t, err)
	})
}

func TestByPlatform(t *testing.T) {
	cat := catalog.New(testProducts())

	n64 := cat.ByPlatform("N64")
	assert.Len(t, n64, 2)

	assert.Empty(t, cat.ByPlatform("GameCube"))
}

func TestSearch(t *testing.T) {
	cat := catalog.New(testProducts())

	t.Run("Matches Name Case-Insensitively", func(t *testing.T) {
		results := cat.Search("mario")
		assert.Len(t, results, 2)
	})

	t.Run("Matches Platform", func(t *testing.T) {
		results := cat.Search("nes")
		// "nes" appears in NES and SNES platform names
		assert.Len(t, results, 2)
	})

	t.Run("Matches Genre", func(t *testing.T) {
		results := cat.Search("racing")
		require.Len(t, results, 1)
		assert.Equal(t, "mk64", results[0].SKU)
	})

	t.Run("Blank Query Returns Nothing", func(t *testing.T) {
		assert.Empty(t, cat.Search("   "))
	})
}

func TestPlatforms(t *testing.T) {
	// Arrange
	cat := catalog.New(testProducts())

	// Act
	platforms := cat.Platforms()

	// Assert
	require.Len(t, platforms, 3)
	assert.Equal(t, models.PlatformCount{Name: "N64", Count: 2}, platforms[0], "busiest platform first")
	// equal counts fall back to name order
	assert.Equal(t, "NES", platforms[1].Name)
	assert.Equal(t, "SNES", platforms[2].Name)
}

func TestGenres(t *testing.T) {
	cat := catalog.New(testProducts())

	genres := cat.Genres()
	assert.Equal(t, []string{"Adventure", "Platformer", "Racing"}, genres, "sorted, empty genre excluded")
}

func TestEffectivePrice(t *testing.T) {
	t.Run("Sale Price Wins When Lower", func(t *testing.T) {
		p := models.Product{SKU: "x", Price: 49.99, SalePrice: floatPtr(44.99)}
		assert.Equal(t, 44.99, catalog.EffectivePrice(p))
	})

	t.Run("Sale Price Above Base Is Ignored", func(t *testing.T) {
		p := models.Product{SKU: "x", Price: 49.99, SalePrice: floatPtr(59.99)}
		assert.Equal(t, 49.99, catalog.EffectivePrice(p))
	})

	t.Run("Zero Sale Price Is Ignored", func(t *testing.T) {
		p := models.Product{SKU: "x", Price: 49.99, SalePrice: floatPtr(0)}
		assert.Equal(t, 49.99, catalog.EffectivePrice(p))
	})

	t.Run("No Sale Price", func(t *testing.T) {
		p := models.Product{SKU: "x", Price: 39.99}
		assert.Equal(t, 39.99, catalog.EffectivePrice(p))
	})
}
