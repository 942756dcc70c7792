package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventorypulse/internal/middleware"
	"inventorypulse/internal/model"
	"inventorypulse/internal/service"
	"inventorypulse/pkg/logger"
	"inventorypulse/prometheus"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	SKU              string `json:"sku"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Brand            string `json:"brand"`
	Category         string `json:"category"`
	ImageURL         string `json:"imageUrl"`
	Stock            *int   `json:"stock"`
	ReorderThreshold int    `json:"reorderThreshold"`
}

// ProductHandler serves the catalog endpoints
type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles retrieving all products, optionally filtered by a search query
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := h.products.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, products)
}

// Search handles case-insensitive substring search over SKU, title and brand
func (h *ProductHandler) Search(c echo.Context) error {
	log := logger.FromContext(c)
	query := c.QueryParam("q")

	products, err := h.products.Search(c.Request().Context(), query)
	if err != nil {
		log.Error("Product search failed", zap.String("query", query), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search products"})
	}

	return c.JSON(http.StatusOK, products)
}

// LowStock lists products at or below their reorder threshold
func (h *ProductHandler) LowStock(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := h.products.LowStock(c.Request().Context())
	if err != nil {
		log.Error("Low-stock query failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, products)
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := h.products.Get(c.Request().Context(), id)
	if errors.Is(err, service.ErrProductNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	if err != nil {
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve product"})
	}

	return c.JSON(http.StatusOK, product)
}

// Create handles creating a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product, errMsg := req.toProduct()
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}

	err := h.products.Create(c.Request().Context(), product)
	if errors.Is(err, service.ErrDuplicateSKU) {
		log.Warn("Product with this SKU already exists", zap.String("sku", product.SKU))
		return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrDuplicateSKU.Error()})
	}
	if err != nil {
		log.Error("Failed to create product", zap.String("sku", product.SKU), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU),
		zap.String("title", product.Title))
	return c.JSON(http.StatusCreated, product)
}

// Update handles a full overwrite of an existing product's editable fields.
// Stock set here bypasses the transaction ledger; no history row is written.
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("update")

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	in, errMsg := req.toProduct()
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}

	product, err := h.products.Update(c.Request().Context(), id, *in)
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	case errors.Is(err, service.ErrDuplicateSKU):
		log.Warn("Product with this SKU already exists", zap.String("sku", in.SKU))
		return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrDuplicateSKU.Error()})
	case err != nil:
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusOK, product)
}

// Delete handles deleting a product; its ledger entries cascade with it
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("delete")

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	err = h.products.Delete(c.Request().Context(), id)
	if errors.Is(err, service.ErrProductNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	if err != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}

	log.Info("Product deleted", zap.Uint("product_id", id))
	return c.NoContent(http.StatusNoContent)
}

// Import handles CSV bulk import of products
func (h *ProductHandler) Import(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("import")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "csv file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to read uploaded file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read uploaded file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to read uploaded file"})
	}

	uploaderID, _ := middleware.CallerID(c)

	result, err := h.products.ImportCSV(c.Request().Context(), fileHeader.Filename, data, uploaderID)
	if errors.Is(err, service.ErrDuplicateImport) {
		log.Warn("Duplicate CSV import rejected", zap.String("file_name", fileHeader.Filename))
		return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrDuplicateImport.Error()})
	}
	if err != nil {
		log.Error("CSV import failed", zap.String("file_name", fileHeader.Filename), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}

	prometheus.ImportRowsCounter.WithLabelValues("imported").Add(float64(result.Imported))
	prometheus.ImportRowsCounter.WithLabelValues("skipped").Add(float64(result.Skipped))
	return c.JSON(http.StatusOK, result)
}

// toProduct validates the request and builds the model; the second return is
// a human-readable rejection reason, empty when valid.
func (r *ProductRequest) toProduct() (*model.Product, string) {
	sku := strings.TrimSpace(r.SKU)
	title := strings.TrimSpace(r.Title)

	if sku == "" {
		return nil, "sku is required"
	}
	if title == "" {
		return nil, "title is required"
	}
	if r.ReorderThreshold < 0 {
		return nil, "reorderThreshold cannot be negative"
	}

	stock := 0
	if r.Stock != nil {
		if *r.Stock < 0 {
			return nil, "stock cannot be negative"
		}
		stock = *r.Stock
	}

	return &model.Product{
		SKU:              sku,
		Title:            title,
		Description:      r.Description,
		Brand:            r.Brand,
		Category:         r.Category,
		ImageURL:         r.ImageURL,
		Stock:            stock,
		ReorderThreshold: r.ReorderThreshold,
	}, ""
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
