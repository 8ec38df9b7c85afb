package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadParsesValidationSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	data := `
service_name: matching-engine
price_bands:
  EURUSD:
    floor: "0.9000"
    ceil: "1.4000"
tick_size_file: "./config/ticksize.json"
instruments:
  - kind: currency
    symbol: "EURUSD"
    settlement: "202609"
    spot: "1.1021"
    premium: "0.0034"
    min_size: 1000
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	band, ok := cfg.PriceBands["EURUSD"]
	if !ok {
		t.Fatal("EURUSD price band missing")
	}
	if !band.Floor.Equal(decimal.NewFromFloat(0.9)) || !band.Ceil.Equal(decimal.NewFromFloat(1.4)) {
		t.Errorf("band = [%s, %s], want [0.9, 1.4]", band.Floor, band.Ceil)
	}

	if cfg.TickSizeFile != "./config/ticksize.json" {
		t.Errorf("TickSizeFile = %q", cfg.TickSizeFile)
	}

	if len(cfg.Instruments) != 1 || cfg.Instruments[0].MinSize != 1000 {
		t.Errorf("instruments = %+v", cfg.Instruments)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_DB_USER", "exchange")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	data := `
service_name: matching-engine
exchange_db:
  data_source: "user=${TEST_DB_USER} dbname=exchange"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ExchangeDB.DataSource != "user=exchange dbname=exchange" {
		t.Errorf("DataSource = %q, env not expanded", cfg.ExchangeDB.DataSource)
	}
}
