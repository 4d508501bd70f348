// Package rest provides HTTP handlers for inventory, sales and metrics.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	perrors "github.com/abgdnv/crickstore/internal/errors"
	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxPageSize caps a single page of the sales history.
const maxPageSize = 500

// MetricsReader is the part of service.Metrics the handler needs.
type MetricsReader interface {
	Summary(ctx context.Context) (*service.MetricsDto, error)
}

type Handler struct {
	products service.ProductService
	sales    service.SaleService
	metrics  MetricsReader
	logger   *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided services.
func NewHandler(products service.ProductService, sales service.SaleService, metrics MetricsReader, logger *slog.Logger) *Handler {
	return &Handler{
		products: products,
		sales:    sales,
		metrics:  metrics,
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes of the shop API.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.FindAllProducts)
			r.Post("/", h.CreateProduct)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindProductByID)
				r.Put("/", h.UpdateProduct)
			})
		})
		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.FindAllSales)
			r.Post("/", h.RecordSale)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindSaleByID)
				r.Patch("/status", h.UpdateSaleStatus)
			})
		})
		r.Get("/metrics", h.Metrics)
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAllProducts returns the inventory in creation order.
func (h *Handler) FindAllProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.products.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindProductByID retrieves a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// CreateProduct handles the creation of a new product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var productCreateDto service.ProductCreateDto
	if !web.DecodeJSON(w, r, mLogger, &productCreateDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)

	newProduct, err := h.products.Create(r.Context(), productCreateDto)
	if err != nil {
		if web.RespondValidationErrors(w, r, mLogger, err) {
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, newProduct)
}

// UpdateProduct replaces the product with the ID from the path.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	var productDTO service.ProductDto
	if !web.DecodeJSON(w, r, mLogger, &productDTO) {
		return
	}

	productDTO.ID = id

	updated, err := h.products.Update(r.Context(), productDTO)
	if err != nil {
		if web.RespondValidationErrors(w, r, mLogger, err) {
			return
		}
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// FindAllSales returns the sales history, most recent first.
// Optional limit and offset query parameters select a page of it.
func (h *Handler) FindAllSales(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	limit, ok := web.QueryInt(w, r, mLogger, "limit", maxPageSize, web.Between(1, maxPageSize))
	if !ok {
		return
	}
	offset, ok := web.QueryInt(w, r, mLogger, "offset", 0, web.AtLeast(0))
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find all sales", "limit", limit, "offset", offset)
	list, err := h.sales.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving sales history", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch sales")
		return
	}
	page := web.Page(list, offset, limit)
	mLogger.DebugContext(r.Context(), "Successfully retrieved sales history", "count", len(page), "total", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, page)
}

// FindSaleByID retrieves a sale by its ID.
func (h *Handler) FindSaleByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.sales.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, perrors.ErrSaleNotFound) {
			mLogger.WarnContext(r.Context(), "Sale not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Sale with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving sale", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve sale with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// RecordSale records a sale and decrements the stock of the sold product.
func (h *Handler) RecordSale(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var saleCreateDto service.SaleCreateDto
	if !web.DecodeJSON(w, r, mLogger, &saleCreateDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to record sale", "sale", saleCreateDto)

	sale, err := h.sales.Record(r.Context(), saleCreateDto)
	if err != nil {
		if web.RespondValidationErrors(w, r, mLogger, err) {
			return
		}
		switch {
		case errors.Is(err, perrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found for sale", "ProductID", saleCreateDto.ProductID)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", saleCreateDto.ProductID))
		case errors.Is(err, perrors.ErrInsufficientStock):
			mLogger.WarnContext(r.Context(), "Insufficient stock for sale", "ProductID", saleCreateDto.ProductID, "error", err)
			web.RespondError(w, mLogger, http.StatusConflict, err.Error())
		default:
			mLogger.ErrorContext(r.Context(), "Error recording sale", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to record sale")
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Sale recorded successfully", "ID", sale.ID, "Product", sale.Product, "Quantity", sale.Quantity)
	web.RespondJSON(w, mLogger, http.StatusCreated, sale)
}

// UpdateSaleStatus sets the payment or shipping status of a sale.
func (h *Handler) UpdateSaleStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var update service.SaleStatusUpdateDto
	if !web.DecodeJSON(w, r, mLogger, &update) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update sale status", "ID", id, "field", update.Field, "value", update.Value)

	updated, err := h.sales.UpdateStatus(r.Context(), id, update)
	if err != nil {
		if web.RespondValidationErrors(w, r, mLogger, err) {
			return
		}
		switch {
		case errors.Is(err, perrors.ErrInvalidStatus):
			mLogger.WarnContext(r.Context(), "Invalid sale status", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid value %q for %s", update.Value, update.Field))
		case errors.Is(err, perrors.ErrSaleNotFound):
			mLogger.WarnContext(r.Context(), "Sale not found for status update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Sale with ID %s not found", id))
		default:
			mLogger.ErrorContext(r.Context(), "Error updating sale status", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update sale with ID %s", id))
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Sale status updated successfully", "ID", updated.ID, "field", update.Field, "value", update.Value)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// Metrics returns the header totals.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	summary, err := h.metrics.Summary(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error computing metrics", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to compute metrics")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, summary)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}

