package service

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when the referenced product does not exist
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateSKU is returned when a catalog write would reuse an existing SKU
	ErrDuplicateSKU = errors.New("product with this SKU already exists")

	// ErrDuplicateReference is returned when a stock adjustment reuses an
	// external reference that is already on the ledger
	ErrDuplicateReference = errors.New("transaction with external reference already exists")

	// ErrZeroDelta is returned when a stock adjustment carries no change
	ErrZeroDelta = errors.New("delta must be non-zero")

	// ErrDuplicateImport is returned when a CSV file was already imported
	ErrDuplicateImport = errors.New("file already imported")

	// ErrAlertNotFound is returned when the referenced alert does not exist
	ErrAlertNotFound = errors.New("alert not found")
)

// NegativeStockError is returned when an adjustment would drive stock below zero.
// It carries the stock and delta so the caller sees what was attempted.
type NegativeStockError struct {
	CurrentStock int
	Delta        int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("stock cannot be negative (current: %d, delta: %d)", e.CurrentStock, e.Delta)
}
