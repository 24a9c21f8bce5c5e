package httphandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateProduct(
	ctx context.Context, collection string, fields domain.ProductFields,
) (domain.Product, error) {
	args := m.Called(ctx, collection, fields)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogService) ListProducts(
	ctx context.Context, collection string,
) ([]domain.Product, error) {
	args := m.Called(ctx, collection)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogService) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogService) CreateOrder(
	ctx context.Context, amount float64,
) (domain.Order, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(domain.Order), args.Error(1)
}

const teeJSON = `{
	"name": "Tee",
	"price": 500,
	"imageUrl": "x",
	"displayImages": ["x"],
	"category": ["shirts"],
	"sizes": ["M"],
	"description": "d",
	"shippingAndReturn": "r",
	"careGuide": "c",
	"gender": "unisex"
}`

const teeID = "65f0c0ffee0000000000beef"

func teeProduct() domain.Product {
	return domain.Product{
		ID:                teeID,
		Name:              "Tee",
		Price:             500,
		ImageURL:          "x",
		DisplayImages:     []string{"x"},
		Category:          []string{"shirts"},
		Sizes:             []string{"M"},
		Description:       "d",
		ShippingAndReturn: "r",
		CareGuide:         "c",
		Gender:            "unisex",
	}
}

func teeFields() domain.ProductFields {
	price := 500.0
	return domain.ProductFields{
		Name:              "Tee",
		Price:             &price,
		ImageURL:          "x",
		DisplayImages:     []string{"x"},
		Category:          []string{"shirts"},
		Sizes:             []string{"M"},
		Description:       "d",
		ShippingAndReturn: "r",
		CareGuide:         "c",
		Gender:            "unisex",
	}
}

const teeResponseJSON = `{
	"_id": "65f0c0ffee0000000000beef",
	"name": "Tee",
	"price": 500,
	"imageUrl": "x",
	"displayImages": ["x"],
	"category": ["shirts"],
	"sizes": ["M"],
	"description": "d",
	"shippingAndReturn": "r",
	"careGuide": "c",
	"gender": "unisex"
}`

func newTestMux(svc CatalogService) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterCatalog(mux, svc, NewMetrics())
	return mux
}

func serve(
	h http.Handler, method, target, body string,
) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestCreateProduct(t *testing.T) {
	t.Run("Main", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("CreateProduct", mock.Anything, "products", teeFields()).
			Return(teeProduct(), nil)

		w := serve(newTestMux(svc), http.MethodPost, "/create-product", teeJSON)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{
			"message": "Product added to the main products collection successfully",
			"mainProduct": `+teeResponseJSON+`
		}`, w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("Sub", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("CreateProduct", mock.Anything, "shirts", teeFields()).
			Return(teeProduct(), nil)

		w := serve(newTestMux(svc),
			http.MethodPost, "/create-product-in/shirts", teeJSON)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{
			"message": "Product added to the shirts collection successfully",
			"subProduct": `+teeResponseJSON+`
		}`, w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		svc := new(MockCatalogService)
		verr := &domain.ValidationError{Field: "name", Message: "name is required"}
		svc.On("CreateProduct", mock.Anything, "products", mock.Anything).
			Return(domain.Product{}, fmt.Errorf("Service.CreateProduct: %w", verr))

		w := serve(newTestMux(svc), http.MethodPost, "/create-product", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"name is required"}`, w.Body.String())
	})

	t.Run("EmptyBody", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("CreateProduct", mock.Anything, "products", domain.ProductFields{}).
			Return(domain.Product{}, &domain.ValidationError{
				Field: "name", Message: "name is required",
			})

		w := serve(newTestMux(svc), http.MethodPost, "/create-product", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		svc := new(MockCatalogService)

		w := serve(newTestMux(svc), http.MethodPost, "/create-product", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"invalid JSON data"}`, w.Body.String())
		svc.AssertNotCalled(t, "CreateProduct",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MistypedField", func(t *testing.T) {
		svc := new(MockCatalogService)

		w := serve(newTestMux(svc),
			http.MethodPost, "/create-product", `{"price":"cheap"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"price has invalid type"}`, w.Body.String())
	})

	t.Run("StorageError", func(t *testing.T) {
		svc := new(MockCatalogService)
		serr := &domain.StorageError{Err: errors.New("connection refused")}
		svc.On("CreateProduct", mock.Anything, "products", mock.Anything).
			Return(domain.Product{}, fmt.Errorf("Service.CreateProduct: %w", serr))

		w := serve(newTestMux(svc), http.MethodPost, "/create-product", teeJSON)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"connection refused"}`, w.Body.String())
	})
}

func TestListProducts(t *testing.T) {
	t.Run("Main", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListProducts", mock.Anything, "products").
			Return([]domain.Product{teeProduct()}, nil)

		w := serve(newTestMux(svc), http.MethodGet, "/get-products", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "["+teeResponseJSON+"]", w.Body.String())
	})

	t.Run("EmptyCollection", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListProducts", mock.Anything, "hats").
			Return([]domain.Product{}, nil)

		w := serve(newTestMux(svc), http.MethodGet, "/get-products/hats", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("StorageError", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListProducts", mock.Anything, "products").
			Return(nil, &domain.StorageError{Err: errors.New("timeout")})

		w := serve(newTestMux(svc), http.MethodGet, "/get-products", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"timeout"}`, w.Body.String())
	})
}

func TestGetProductDetails(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("GetProduct", mock.Anything, teeID).Return(teeProduct(), nil)

		w := serve(newTestMux(svc),
			http.MethodGet, "/get-product-details/"+teeID, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, teeResponseJSON, w.Body.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("GetProduct", mock.Anything, teeID).
			Return(domain.Product{}, domain.ErrNotFound)

		w := serve(newTestMux(svc),
			http.MethodGet, "/get-product-details/"+teeID, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Product not found"}`, w.Body.String())
	})

	t.Run("InvalidIdentity", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("GetProduct", mock.Anything, "nope").
			Return(domain.Product{}, domain.ErrInvalidIdentity)

		w := serve(newTestMux(svc), http.MethodGet, "/get-product-details/nope", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("CreateOrder", mock.Anything, 10.0).Return(domain.Order{
			ID:        "order_123",
			Entity:    "order",
			Amount:    1000,
			AmountDue: 1000,
			Currency:  "INR",
			Receipt:   "receipt_order_1700000000123",
			Status:    "created",
			CreatedAt: 1700000000,
		}, nil)

		w := serve(newTestMux(svc), http.MethodPost, "/create-order", `{"amount":10}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"id": "order_123",
			"entity": "order",
			"amount": 1000,
			"amount_paid": 0,
			"amount_due": 1000,
			"currency": "INR",
			"receipt": "receipt_order_1700000000123",
			"offer_id": null,
			"status": "created",
			"attempts": 0,
			"notes": {},
			"created_at": 1700000000
		}`, w.Body.String())
	})

	t.Run("MissingAmount", func(t *testing.T) {
		svc := new(MockCatalogService)

		w := serve(newTestMux(svc), http.MethodPost, "/create-order", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"amount is required"}`, w.Body.String())
		svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("GatewayError", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("CreateOrder", mock.Anything, 10.0).Return(domain.Order{},
			&domain.GatewayError{
				StatusCode:  http.StatusUnauthorized,
				Code:        "BAD_REQUEST_ERROR",
				Description: "Authentication failed",
			})

		w := serve(newTestMux(svc), http.MethodPost, "/create-order", `{"amount":10}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Authentication failed"}`, w.Body.String())
	})
}

func TestStatusAndMessage(t *testing.T) {
	status, msg := statusAndMessage(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", msg)

	status, msg = statusAndMessage(&domain.GatewayError{Err: errors.New("dial tcp")})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "payment gateway: dial tcp", msg)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		mux := http.NewServeMux()
		RegisterHealth(mux, stubPinger{})

		w := serve(mux, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("Down", func(t *testing.T) {
		mux := http.NewServeMux()
		RegisterHealth(mux, stubPinger{errors.New("no primary")})

		w := serve(mux, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
