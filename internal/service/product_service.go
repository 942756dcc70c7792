package service

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"inventorypulse/internal/model"
)

// ProductService owns catalog reads and writes, independent of the ledger.
type ProductService struct {
	products ProductStore
	batches  ImportBatchStore
	log      *zap.Logger
}

func NewProductService(products ProductStore, batches ImportBatchStore, log *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		batches:  batches,
		log:      log,
	}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Search matches the query case-insensitively against SKU, title and brand.
// A blank query returns the full catalog.
func (s *ProductService) Search(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.products.List(ctx)
	}
	return s.products.Search(ctx, query)
}

// LowStock returns products whose stock is at or below their reorder threshold.
func (s *ProductService) LowStock(ctx context.Context) ([]model.Product, error) {
	return s.products.LowStock(ctx)
}

func (s *ProductService) Create(ctx context.Context, product *model.Product) error {
	taken, err := s.products.ExistsBySKU(ctx, product.SKU, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateSKU
	}

	return s.products.Create(ctx, product)
}

// Update overwrites every editable field, including stock. A stock edit made
// this way writes no ledger entry; such changes are intentionally unaudited.
func (s *ProductService) Update(ctx context.Context, id uint, in model.Product) (*model.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	if in.SKU != existing.SKU {
		taken, err := s.products.ExistsBySKU(ctx, in.SKU, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateSKU
		}
	}

	existing.SKU = in.SKU
	existing.Title = in.Title
	existing.Description = in.Description
	existing.Brand = in.Brand
	existing.Category = in.Category
	existing.ImageURL = in.ImageURL
	existing.Stock = in.Stock
	existing.ReorderThreshold = in.ReorderThreshold

	if err := s.products.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	return nil
}

// ImportResult summarizes one CSV import run.
type ImportResult struct {
	TotalRows int `json:"totalRows"`
	Imported  int `json:"imported"`
	Skipped   int `json:"skipped"`
}

// csvColumns is the expected header layout:
// sku,title,description,brand,category,image_url,stock,reorder_threshold
const csvColumns = 8

// ImportCSV bulk-creates products from CSV data. Rows are processed
// best-effort: a malformed or conflicting row is skipped, the rest still
// import. The file hash is recorded so re-uploading the same file fails with
// ErrDuplicateImport instead of silently skipping every row.
func (s *ProductService) ImportCSV(ctx context.Context, fileName string, data []byte, uploaderID uint) (*ImportResult, error) {
	hash := sha256.Sum256(data)
	fileHash := hex.EncodeToString(hash[:])

	imported, err := s.batches.HasFileHash(ctx, fileHash)
	if err != nil {
		return nil, err
	}
	if imported {
		return nil, ErrDuplicateImport
	}

	result := &ImportResult{}

	lines := splitLines(data)
	if len(lines) == 0 {
		return result, nil
	}

	// First line is the header; every following line is one row, blank
	// lines included so the caller's totals account for them
	for _, line := range lines[1:] {
		result.TotalRows++

		if strings.TrimSpace(line) == "" {
			result.Skipped++
			continue
		}

		reader := csv.NewReader(strings.NewReader(line))
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		record, err := reader.Read()
		if err != nil {
			result.Skipped++
			continue
		}

		if s.importRow(ctx, record) {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	batch := &model.ImportBatch{
		FileName:   fileName,
		FileHash:   fileHash,
		UploaderID: uploaderID,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	s.log.Info("CSV import finished",
		zap.String("file_name", fileName),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// splitLines splits the file into lines, dropping the empty trailing slot a
// final newline produces. Interior blank lines are kept so they count as
// skipped rows.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// importRow creates one product from a CSV record, reporting success.
func (s *ProductService) importRow(ctx context.Context, record []string) bool {
	if len(record) < csvColumns {
		return false
	}

	sku := strings.TrimSpace(record[0])
	title := strings.TrimSpace(record[1])
	reorderThreshold, thresholdErr := strconv.Atoi(strings.TrimSpace(record[7]))

	if sku == "" || title == "" || thresholdErr != nil || reorderThreshold < 0 {
		return false
	}

	// A bad stock cell defaults to 0 rather than losing the row
	stock, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil || stock < 0 {
		stock = 0
	}

	product := &model.Product{
		SKU:              sku,
		Title:            title,
		Description:      strings.TrimSpace(record[2]),
		Brand:            strings.TrimSpace(record[3]),
		Category:         strings.TrimSpace(record[4]),
		ImageURL:         strings.TrimSpace(record[5]),
		Stock:            stock,
		ReorderThreshold: reorderThreshold,
	}

	if err := s.Create(ctx, product); err != nil {
		if !errors.Is(err, ErrDuplicateSKU) {
			s.log.Warn("CSV row rejected", zap.String("sku", sku), zap.Error(err))
		}
		return false
	}
	return true
}
