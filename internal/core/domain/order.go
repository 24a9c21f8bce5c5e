package domain

const (
	DefaultCurrency = "INR"
	ReceiptPrefix   = "receipt_order_"
)

// OrderRequest is sent to the payment gateway. AmountMinor is in the
// smallest currency unit (paise for INR).
type OrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
}

// Order is the order object created by the payment gateway.
type Order struct {
	ID         string
	Entity     string
	Amount     int64
	AmountPaid int64
	AmountDue  int64
	Currency   string
	Receipt    string
	OfferID    *string
	Status     string
	Attempts   int
	Notes      map[string]string
	CreatedAt  int64
}
