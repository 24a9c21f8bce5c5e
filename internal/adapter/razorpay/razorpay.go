package razorpay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

const (
	DefaultBaseURL = "https://api.razorpay.com"
	ordersPath     = "/v1/orders"
	defaultTimeout = 10 * time.Second
)

var _ port.PaymentGateway = (*Client)(nil)

type (
	orderRequest struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
	}

	orderResponse struct {
		ID         string          `json:"id"`
		Entity     string          `json:"entity"`
		Amount     int64           `json:"amount"`
		AmountPaid int64           `json:"amount_paid"`
		AmountDue  int64           `json:"amount_due"`
		Currency   string          `json:"currency"`
		Receipt    string          `json:"receipt"`
		OfferID    *string         `json:"offer_id"`
		Status     string          `json:"status"`
		Attempts   int             `json:"attempts"`
		Notes      json.RawMessage `json:"notes"`
		CreatedAt  int64           `json:"created_at"`
	}

	errorResponse struct {
		Error struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	}
)

type Opt func(*Client)

// BaseURLOpt overrides [DefaultBaseURL].
func BaseURLOpt(url string) Opt {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

func TimeoutOpt(d time.Duration) Opt {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// A Client creates orders with the Razorpay Orders API.
type Client struct {
	http *resty.Client
}

func New(keyID, keySecret string, opts ...Opt) *Client {
	http := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetTimeout(defaultTimeout).
		SetBasicAuth(keyID, keySecret).
		SetHeader("Content-Type", "application/json")

	c := &Client{http: http}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CreateOrder(
	ctx context.Context, req domain.OrderRequest,
) (domain.Order, error) {
	const op = "razorpay.Client.CreateOrder"
	log := slog.With("op", op)

	var (
		result  orderResponse
		failure errorResponse
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(orderRequest{
			Amount:   req.AmountMinor,
			Currency: req.Currency,
			Receipt:  req.Receipt,
		}).
		SetResult(&result).
		SetError(&failure).
		Post(ordersPath)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, &domain.GatewayError{Err: err})
	}

	if resp.IsError() {
		gwErr := &domain.GatewayError{
			StatusCode:  resp.StatusCode(),
			Code:        failure.Error.Code,
			Description: failure.Error.Description,
		}
		if gwErr.Description == "" {
			gwErr.Description = resp.String()
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, gwErr)
	}

	log.Info("order created", "orderID", result.ID, "receipt", result.Receipt)
	return result.toDomain(), nil
}

func (r orderResponse) toDomain() domain.Order {
	return domain.Order{
		ID:         r.ID,
		Entity:     r.Entity,
		Amount:     r.Amount,
		AmountPaid: r.AmountPaid,
		AmountDue:  r.AmountDue,
		Currency:   r.Currency,
		Receipt:    r.Receipt,
		OfferID:    r.OfferID,
		Status:     r.Status,
		Attempts:   r.Attempts,
		Notes:      decodeNotes(r.Notes),
		CreatedAt:  r.CreatedAt,
	}
}

// decodeNotes accepts the "notes" object. The API sends an empty array when
// an order has no notes.
func decodeNotes(raw json.RawMessage) map[string]string {
	notes := map[string]string{}
	if len(raw) == 0 {
		return notes
	}
	_ = json.Unmarshal(raw, &notes)
	return notes
}
