//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "gomitas-api"
	ConsumerName = "gomitas-storefront"

	StateCatalogBaseline = "product 1 has 10 units in stock"
	StateOrderPlaced     = "customer 2 placed order 1"
	StateOrderMissing    = "no order with id 999"
)

const (
	AdminID    int64 = 1
	CustomerID int64 = 2

	ProductID      int64 = 1
	ProductName          = "Ositos Clasicos"
	ProductPrice         = "12.90"
	ProductStock   int64 = 10
	PlacedQuantity int64 = 4
	ExcessQuantity int64 = 11

	ExistingOrderID int64 = 1
	MissingOrderID  int64 = 999
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
