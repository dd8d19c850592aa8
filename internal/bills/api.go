package bills

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Filters narrows a bill listing. Zero values are left off the query.
type Filters struct {
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
	CardID  string `json:"card_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Type    string `json:"type,omitempty"`
	DueSoon *bool  `json:"due_soon,omitempty"`
}

// Values encodes f as query parameters.
func (f Filters) Values() url.Values {
	return apiclient.NewQuery().
		Int("page", f.Page).
		Int("per_page", f.PerPage).
		String("card_id", f.CardID).
		String("status", f.Status).
		String("type", f.Type).
		Bool("due_soon", f.DueSoon).
		Values()
}

// ListResponse is the envelope of GET /bills.
type ListResponse struct {
	Bills []Record `json:"bills"`
	store.Meta
}

// CreateRequest registers a new bill.
type CreateRequest struct {
	CardID             string          `json:"card_id" validate:"required"`
	BillerName         string          `json:"biller_name" validate:"required"`
	BillerCategory     string          `json:"biller_category" validate:"required"`
	BillType           string          `json:"bill_type" validate:"required"`
	Amount             decimal.Decimal `json:"amount"`
	DueDate            string          `json:"due_date" validate:"required"`
	BillNumber         string          `json:"bill_number,omitempty"`
	ConsumerNumber     string          `json:"consumer_number,omitempty"`
	Description        string          `json:"description,omitempty"`
	IsRecurring        *bool           `json:"is_recurring,omitempty"`
	RecurringFrequency string          `json:"recurring_frequency,omitempty"`
	BillPeriodStart    string          `json:"bill_period_start,omitempty"`
	BillPeriodEnd      string          `json:"bill_period_end,omitempty"`
}

type payRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

type autoPayRequest struct {
	Enable bool `json:"enable"`
}

// API wraps the /bills endpoints.
type API struct {
	client *apiclient.Client
}

// NewAPI binds the bill endpoints to client.
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

func billPath(id string) string {
	return "/bills/" + url.PathEscape(id)
}

// List returns one page of bills.
func (a *API) List(ctx context.Context, f Filters) (ListResponse, error) {
	var resp ListResponse
	err := a.client.Get(ctx, "/bills", f.Values(), &resp)
	return resp, err
}

// Get returns one bill.
func (a *API) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, billPath(id), nil, &rec)
	return rec, err
}

// Create registers a bill.
func (a *API) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, "/bills", req, &out)
	return out, err
}

// Pay settles a bill, in full when amount is nil.
func (a *API) Pay(ctx context.Context, id string, amount *decimal.Decimal) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, billPath(id)+"/pay", payRequest{Amount: amount}, &out)
	return out, err
}

// ToggleAutoPay switches automatic payment on or off.
func (a *API) ToggleAutoPay(ctx context.Context, id string, enable bool) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, billPath(id)+"/auto-pay", autoPayRequest{Enable: enable}, &out)
	return out, err
}

// Update edits arbitrary bill fields.
func (a *API) Update(ctx context.Context, id string, fields map[string]any) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, billPath(id), fields, &out)
	return out, err
}

// Delete removes a bill.
func (a *API) Delete(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Delete(ctx, billPath(id), &out)
	return out, err
}

// Types lists the bill types the API accepts.
func (a *API) Types(ctx context.Context) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Get(ctx, "/bills/types", nil, &out)
	return out, err
}

// Summary returns the API's bill totals.
func (a *API) Summary(ctx context.Context) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Get(ctx, "/bills/summary", nil, &out)
	return out, err
}
