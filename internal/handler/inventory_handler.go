package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventorypulse/internal/middleware"
	"inventorypulse/internal/service"
	"inventorypulse/pkg/logger"
	"inventorypulse/prometheus"
)

const defaultTransactionLimit = 50

// TransactionRequest defines the structure for stock adjustment requests.
// Delta is a pointer so a missing value is distinguishable from zero.
type TransactionRequest struct {
	Delta             *int   `json:"delta"`
	Reason            string `json:"reason"`
	ExternalReference string `json:"externalReference"`
}

// InventoryHandler serves the per-product transaction ledger endpoints
type InventoryHandler struct {
	inventory *service.InventoryService
}

func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// ListTransactions returns the most recent ledger entries for a product,
// newest first
func (h *InventoryHandler) ListTransactions(c echo.Context) error {
	log := logger.FromContext(c)

	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	limit := defaultTransactionLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = parsed
	}

	entries, err := h.inventory.RecentForProduct(c.Request().Context(), productID, limit)
	if errors.Is(err, service.ErrProductNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	if err != nil {
		log.Error("Failed to list transactions",
			zap.Uint("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve transactions"})
	}

	return c.JSON(http.StatusOK, entries)
}

// CreateTransaction applies a stock adjustment and returns the created ledger
// entry. The actor recorded on the entry is always the authenticated caller.
func (h *InventoryHandler) CreateTransaction(c echo.Context) error {
	log := logger.FromContext(c)

	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", productID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	// A missing delta is treated as zero so both fail the same way
	delta := 0
	if req.Delta != nil {
		delta = *req.Delta
	}

	actor, ok := middleware.CallerEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	entry, err := h.inventory.AdjustStock(c.Request().Context(), productID, delta, req.Reason, req.ExternalReference, actor)
	if err != nil {
		return h.adjustError(c, productID, delta, err)
	}

	prometheus.RecordStockAdjustment("accepted")
	prometheus.UpdateProductInventory(strconv.FormatUint(uint64(productID), 10), entry.Product.SKU, float64(entry.ResultingStock))

	return c.JSON(http.StatusCreated, entry)
}

func (h *InventoryHandler) adjustError(c echo.Context, productID uint, delta int, err error) error {
	log := logger.FromContext(c)
	var negative *service.NegativeStockError

	switch {
	case errors.Is(err, service.ErrZeroDelta):
		prometheus.RecordStockAdjustment("rejected_zero_delta")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": service.ErrZeroDelta.Error()})
	case errors.As(err, &negative):
		prometheus.RecordStockAdjustment("rejected_negative_stock")
		log.Warn("Adjustment would drive stock negative",
			zap.Uint("product_id", productID),
			zap.Int("current_stock", negative.CurrentStock),
			zap.Int("delta", negative.Delta))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": negative.Error()})
	case errors.Is(err, service.ErrDuplicateReference):
		prometheus.RecordStockAdjustment("rejected_duplicate_reference")
		return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrDuplicateReference.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		prometheus.RecordStockAdjustment("rejected_not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	default:
		prometheus.RecordStockAdjustment("failed")
		log.Error("Stock adjustment failed",
			zap.Uint("product_id", productID),
			zap.Int("delta", delta),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to apply adjustment"})
	}
}
