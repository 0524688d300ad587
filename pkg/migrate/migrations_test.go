package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestPromotionsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_promotions_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS promotions",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_promotions_code",
		"CREATE INDEX IF NOT EXISTS idx_promotions_lifecycle",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestPricingMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_catalog_pricing_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS variants",
		"CREATE TABLE IF NOT EXISTS segment_prices",
		"CREATE TABLE IF NOT EXISTS bulk_price_bands",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_segment_prices_variant_tier",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestFulfillmentMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_fulfillment_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS shipping_tiers",
		"CREATE TABLE IF NOT EXISTS warehouses",
		"CREATE TABLE IF NOT EXISTS warehouse_stock",
		"GEOGRAPHY(Point, 4326)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_warehouse_stock_wh_variant",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
