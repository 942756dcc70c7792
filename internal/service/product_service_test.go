package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventorypulse/internal/model"
)

func newCatalogFixture(t *testing.T) (*ProductService, *fakeProductStore, *fakeImportBatchStore) {
	t.Helper()
	products := newFakeProductStore()
	batches := &fakeImportBatchStore{}
	return NewProductService(products, batches, zap.NewNop()), products, batches
}

func TestCreateRejectsDuplicateSKU(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Product{SKU: "A1", Title: "Widget"}))

	err := svc.Create(ctx, &model.Product{SKU: "A1", Title: "Other widget"})
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestGetUnknownProduct(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	product := &model.Product{SKU: "A1", Title: "Widget", Stock: 3, ReorderThreshold: 1}
	require.NoError(t, svc.Create(ctx, product))

	updated, err := svc.Update(ctx, product.ID, model.Product{
		SKU:              "A2",
		Title:            "Widget mk2",
		Brand:            "Acme",
		Stock:            99,
		ReorderThreshold: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "A2", updated.SKU)
	assert.Equal(t, "Widget mk2", updated.Title)
	assert.Equal(t, "Acme", updated.Brand)
	// Direct stock edit, no ledger involved
	assert.Equal(t, 99, updated.Stock)
	assert.Equal(t, 10, updated.ReorderThreshold)
}

func TestUpdateRejectsSKUCollision(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	first := &model.Product{SKU: "A1", Title: "Widget"}
	second := &model.Product{SKU: "B1", Title: "Gadget"}
	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, svc.Create(ctx, second))

	_, err := svc.Update(ctx, second.ID, model.Product{SKU: "A1", Title: "Gadget"})
	assert.ErrorIs(t, err, ErrDuplicateSKU)

	// Keeping its own SKU is not a collision
	_, err = svc.Update(ctx, second.ID, model.Product{SKU: "B1", Title: "Gadget mk2"})
	assert.NoError(t, err)
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	_, err := svc.Update(context.Background(), 42, model.Product{SKU: "A1", Title: "Widget"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSearchMatchesSKUTitleAndBrand(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Product{SKU: "WID-1", Title: "Widget", Brand: "Acme"}))
	require.NoError(t, svc.Create(ctx, &model.Product{SKU: "GAD-1", Title: "Gadget", Brand: "Globex"}))

	results, err := svc.Search(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "WID-1", results[0].SKU)

	results, err = svc.Search(ctx, "GaD")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "GAD-1", results[0].SKU)

	// Blank query returns the whole catalog
	results, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestLowStockQuery(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Product{SKU: "A1", Title: "Low", Stock: 2, ReorderThreshold: 5}))
	require.NoError(t, svc.Create(ctx, &model.Product{SKU: "A2", Title: "At threshold", Stock: 5, ReorderThreshold: 5}))
	require.NoError(t, svc.Create(ctx, &model.Product{SKU: "A3", Title: "Fine", Stock: 6, ReorderThreshold: 5}))

	results, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A1", results[0].SKU)
	assert.Equal(t, "A2", results[1].SKU)
}

const importHeader = "sku,title,description,brand,category,image_url,stock,reorder_threshold\n"

func TestImportCSVBestEffortRows(t *testing.T) {
	svc, products, _ := newCatalogFixture(t)
	ctx := context.Background()

	csvData := importHeader +
		"A1,Widget,desc,Acme,tools,http://img/1.png,10,5\n" +
		"short,row\n" +
		",Missing SKU,,,,,3,1\n" +
		"A2,Bad threshold,,,,,3,abc\n" +
		"A3,Bad stock defaults to zero,,,,,abc,1\n" +
		"A1,Duplicate sku,,,,,1,1\n"

	result, err := svc.ImportCSV(ctx, "products.csv", []byte(csvData), 1)
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 4, result.Skipped)

	all, err := products.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "A1", all[0].SKU)
	assert.Equal(t, 10, all[0].Stock)
	assert.Equal(t, 5, all[0].ReorderThreshold)

	assert.Equal(t, "A3", all[1].SKU)
	assert.Equal(t, 0, all[1].Stock)
}

func TestImportCSVCountsBlankLines(t *testing.T) {
	svc, products, _ := newCatalogFixture(t)
	ctx := context.Background()

	csvData := importHeader +
		"A1,Widget,,,,,1,1\n" +
		"\n" +
		"   \n" +
		"A2,Gadget,,,,,2,1\n"

	result, err := svc.ImportCSV(ctx, "products.csv", []byte(csvData), 1)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	all, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportCSVRejectsDuplicateFile(t *testing.T) {
	svc, _, batches := newCatalogFixture(t)
	ctx := context.Background()

	data := []byte(importHeader + "A1,Widget,,,,,1,1\n")

	result, err := svc.ImportCSV(ctx, "products.csv", data, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, batches.batches, 1)

	_, err = svc.ImportCSV(ctx, "renamed.csv", data, 1)
	assert.ErrorIs(t, err, ErrDuplicateImport)
}

func TestImportCSVEmptyFile(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	result, err := svc.ImportCSV(context.Background(), "empty.csv", nil, 1)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{}, result)
}

func TestImportCSVHeaderOnly(t *testing.T) {
	svc, products, _ := newCatalogFixture(t)

	result, err := svc.ImportCSV(context.Background(), "header.csv", []byte(strings.TrimSuffix(importHeader, "\n")), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalRows)

	all, _ := products.List(context.Background())
	assert.Empty(t, all)
}
