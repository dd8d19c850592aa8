package transactions

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Filters narrows a transaction listing. Zero values are left off the query.
type Filters struct {
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
	CardID    string `json:"card_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Type      string `json:"type,omitempty"`
	Merchant  string `json:"merchant,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Values encodes f as query parameters.
func (f Filters) Values() url.Values {
	return apiclient.NewQuery().
		Int("page", f.Page).
		Int("per_page", f.PerPage).
		String("card_id", f.CardID).
		String("status", f.Status).
		String("type", f.Type).
		String("merchant", f.Merchant).
		String("start_date", f.StartDate).
		String("end_date", f.EndDate).
		Values()
}

// ListResponse is the envelope of every transaction listing, including the
// per-card one served under /cards/{id}/transactions.
type ListResponse struct {
	Transactions []Record `json:"transactions"`
	store.Meta
}

// CreateRequest records a new transaction against a card.
type CreateRequest struct {
	CardID           string          `json:"card_id" validate:"required"`
	MerchantName     string          `json:"merchant_name" validate:"required"`
	MerchantCategory string          `json:"merchant_category" validate:"required"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description,omitempty"`
	TransactionType  string          `json:"transaction_type,omitempty"`
	Location         string          `json:"location,omitempty"`
	DeviceType       string          `json:"device_type,omitempty"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	ReferenceNumber  string          `json:"reference_number,omitempty"`
	IsRecurring      *bool           `json:"is_recurring,omitempty"`
	IsInternational  *bool           `json:"is_international,omitempty"`
}

type refundRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// API wraps the /transactions endpoints.
type API struct {
	client *apiclient.Client
}

// NewAPI binds the transaction endpoints to client.
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

// List returns one page of transactions.
func (a *API) List(ctx context.Context, f Filters) (ListResponse, error) {
	var resp ListResponse
	err := a.client.Get(ctx, "/transactions", f.Values(), &resp)
	return resp, err
}

// Get returns a single transaction.
func (a *API) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, "/transactions/"+url.PathEscape(id), nil, &rec)
	return rec, err
}

// Create records a transaction.
func (a *API) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, "/transactions", req, &out)
	return out, err
}

// Refund refunds a transaction, fully when amount is nil.
func (a *API) Refund(ctx context.Context, id string, amount *decimal.Decimal) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, "/transactions/"+url.PathEscape(id)+"/refund", refundRequest{Amount: amount}, &out)
	return out, err
}

// Categories lists the merchant categories known to the API.
func (a *API) Categories(ctx context.Context) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Get(ctx, "/transactions/categories", nil, &out)
	return out, err
}

// Summary aggregates spending over the last days days; zero lets the API choose.
func (a *API) Summary(ctx context.Context, days int) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Get(ctx, "/transactions/summary", apiclient.NewQuery().Int("days", days).Values(), &out)
	return out, err
}
