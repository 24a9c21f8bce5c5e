package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

// POST /create-product JSON product (201 Created, 400, 500)
// POST /create-product-in/{collectionName} JSON product (201 Created, 400, 500)
// GET /get-products (200 OK)
// GET /get-products/{collectionName} (200 OK)
// GET /get-product-details/{id} (200 OK, 400, 404)
// POST /create-order JSON {"amount": number} (200 OK, 400, 500)

type CatalogService interface {
	port.ProductCreator
	port.ProductsLister
	port.ProductReader
	port.OrderCreator
}

type CatalogHandler struct {
	svc     CatalogService
	metrics *Metrics
}

func RegisterCatalog(mux *http.ServeMux, svc CatalogService, m *Metrics) {
	h := CatalogHandler{svc, m}
	handle := func(pattern string, hf http.HandlerFunc) {
		mux.Handle(pattern, m.Instrument(pattern, hf))
	}
	handle("POST /create-product", h.CreateMainProduct)
	handle("POST /create-product-in/{collectionName}", h.CreateSubProduct)
	handle("GET /get-products", h.ListMainProducts)
	handle("GET /get-products/{collectionName}", h.ListSubProducts)
	handle("GET /get-product-details/{id}", h.GetProductDetails)
	handle("POST /create-order", h.CreateOrder)
}

func (h CatalogHandler) CreateMainProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.CreateMainProduct"

	p, ok := h.createProduct(w, r, op, domain.MainCollection)
	if !ok {
		return
	}
	writeJSON(w, op, http.StatusCreated, MainProductCreated{
		Message:     "Product added to the main products collection successfully",
		MainProduct: p,
	})
}

func (h CatalogHandler) CreateSubProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.CreateSubProduct"

	collection := r.PathValue("collectionName")
	p, ok := h.createProduct(w, r, op, collection)
	if !ok {
		return
	}
	writeJSON(w, op, http.StatusCreated, SubProductCreated{
		Message:    "Product added to the " + collection + " collection successfully",
		SubProduct: p,
	})
}

func (h CatalogHandler) createProduct(
	w http.ResponseWriter, r *http.Request, op, collection string,
) (Product, bool) {
	log := slog.With("op", op, "collection", collection)

	var req ProductRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, op, err)
		log.Warn("failed to parse JSON", "err", err)
		return Product{}, false
	}

	p, err := h.svc.CreateProduct(r.Context(), collection, req.toDomain())
	if err != nil {
		writeError(w, op, err)
		log.Warn("failed to create product", "err", err)
		return Product{}, false
	}

	h.metrics.ProductCreated(collection)
	log.Info("product created", "productID", p.ID)
	return productFromDomain(p), true
}

func (h CatalogHandler) ListMainProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListMainProducts"
	h.listProducts(w, r, op, domain.MainCollection)
}

func (h CatalogHandler) ListSubProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListSubProducts"
	h.listProducts(w, r, op, r.PathValue("collectionName"))
}

func (h CatalogHandler) listProducts(
	w http.ResponseWriter, r *http.Request, op, collection string,
) {
	ps, err := h.svc.ListProducts(r.Context(), collection)
	if err != nil {
		writeError(w, op, err)
		slog.Error("failed to list products",
			"op", op, "collection", collection, "err", err)
		return
	}
	writeJSON(w, op, http.StatusOK, productsFromDomain(ps))
}

func (h CatalogHandler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductDetails"

	p, err := h.svc.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, op, http.StatusOK, productFromDomain(p))
}

func (h CatalogHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.CreateOrder"
	log := slog.With("op", op)

	var req OrderRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, op, err)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.Amount == nil {
		writeError(w, op, &domain.ValidationError{
			Field: "amount", Message: "amount is required",
		})
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), *req.Amount)
	if err != nil {
		writeError(w, op, err)
		log.Error("failed to create order", "err", err)
		return
	}

	h.metrics.OrderCreated()
	log.Info("order created", "orderID", order.ID, "amount", order.Amount)
	writeJSON(w, op, http.StatusOK, orderFromDomain(order))
}

type Pinger interface {
	Ping(context.Context) error
}

// RegisterHealth serves GET /healthz, 503 when the database does not answer.
func RegisterHealth(mux *http.ServeMux, db Pinger) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		const op = "RegisterHealth.healthz"

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			writeJSON(w, op, http.StatusServiceUnavailable,
				ErrorMessage{Message: "database is unavailable"})
			slog.Warn("health check failed", "op", op, "err", err)
			return
		}
		writeJSON(w, op, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// decodeJSON treats an empty body as an empty object.
func decodeJSON(body io.Reader, v any) error {
	err := json.NewDecoder(body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &domain.ValidationError{
			Field:   typeErr.Field,
			Message: typeErr.Field + " has invalid type",
		}
	}
	return errInvalidJSON
}

var errInvalidJSON = errors.New("invalid JSON data")

func statusAndMessage(err error) (int, string) {
	var (
		validationErr *domain.ValidationError
		storageErr    *domain.StorageError
		gatewayErr    *domain.GatewayError
	)
	switch {
	case errors.Is(err, errInvalidJSON):
		return http.StatusBadRequest, errInvalidJSON.Error()
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, domain.ErrInvalidIdentity):
		return http.StatusBadRequest, "Invalid product id"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError, storageErr.Error()
	case errors.As(err, &gatewayErr):
		if gatewayErr.Description != "" {
			return http.StatusInternalServerError, gatewayErr.Description
		}
		return http.StatusInternalServerError, gatewayErr.Error()
	default:
		return http.StatusInternalServerError,
			http.StatusText(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, op string, err error) {
	status, msg := statusAndMessage(err)
	writeJSON(w, op, status, ErrorMessage{Message: msg})
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
