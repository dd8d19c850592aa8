package emis

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Filters narrows an EMI listing. Zero values are left off the query.
type Filters struct {
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
	CardID  string `json:"card_id,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Values encodes f as query parameters.
func (f Filters) Values() url.Values {
	return apiclient.NewQuery().
		Int("page", f.Page).
		Int("per_page", f.PerPage).
		String("card_id", f.CardID).
		String("status", f.Status).
		Values()
}

// ListResponse is the envelope of GET /emis.
type ListResponse struct {
	EMIs []Record `json:"emis"`
	store.Meta
}

// Summary is the API's aggregate over all EMIs of the user.
type Summary struct {
	TotalEMIs      int             `json:"total_emis"`
	ActiveEMIs     int             `json:"active_emis"`
	CompletedEMIs  int             `json:"completed_emis"`
	TotalPrincipal decimal.Decimal `json:"total_principal"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	MonthlyTotal   decimal.Decimal `json:"monthly_emi_total"`
}

// CreateRequest converts a purchase into an EMI.
type CreateRequest struct {
	CardID          string          `json:"card_id" validate:"required"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	TenureMonths    int             `json:"tenure_months" validate:"required,min=1,max=120"`
	StartDate       string          `json:"start_date" validate:"required"`
	Description     string          `json:"description,omitempty"`
	MerchantName    string          `json:"merchant_name,omitempty"`
	ProductName     string          `json:"product_name,omitempty"`
}

// CalculateRequest asks the API to price an EMI without creating it.
type CalculateRequest struct {
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	TenureMonths    int             `json:"tenure_months" validate:"required,min=1,max=120"`
}

type payRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	PaymentDate string           `json:"payment_date,omitempty"`
}

type autoPayRequest struct {
	Enable      bool `json:"enable"`
	AutoPayDate int  `json:"auto_pay_date,omitempty"`
}

type preCloseRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// API wraps the /emis endpoints.
type API struct {
	client *apiclient.Client
}

// NewAPI binds the EMI endpoints to client.
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

func emiPath(id string) string {
	return "/emis/" + url.PathEscape(id)
}

// List returns one page of EMIs.
func (a *API) List(ctx context.Context, f Filters) (ListResponse, error) {
	var resp ListResponse
	err := a.client.Get(ctx, "/emis", f.Values(), &resp)
	return resp, err
}

// Get returns one EMI.
func (a *API) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, emiPath(id), nil, &rec)
	return rec, err
}

// Create converts a purchase into an EMI.
func (a *API) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, "/emis", req, &out)
	return out, err
}

// Pay records an instalment payment. A nil amount pays the regular
// instalment and an empty date means today.
func (a *API) Pay(ctx context.Context, id string, amount *decimal.Decimal, date string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, emiPath(id)+"/pay", payRequest{Amount: amount, PaymentDate: date}, &out)
	return out, err
}

// ToggleAutoPay switches automatic instalments on or off; day is the day of
// the month to debit, zero to keep the current one.
func (a *API) ToggleAutoPay(ctx context.Context, id string, enable bool, day int) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, emiPath(id)+"/auto-pay", autoPayRequest{Enable: enable, AutoPayDate: day}, &out)
	return out, err
}

// PreClose settles the remaining balance early.
func (a *API) PreClose(ctx context.Context, id string, amount *decimal.Decimal) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, emiPath(id)+"/pre-close", preCloseRequest{Amount: amount}, &out)
	return out, err
}

// Update edits arbitrary EMI fields.
func (a *API) Update(ctx context.Context, id string, fields map[string]any) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, emiPath(id), fields, &out)
	return out, err
}

// Cancel deletes an EMI.
func (a *API) Cancel(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Delete(ctx, emiPath(id), &out)
	return out, err
}

// Calculate prices an EMI.
func (a *API) Calculate(ctx context.Context, req CalculateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, "/emis/calculator", req, &out)
	return out, err
}

// Summary returns the EMI totals.
func (a *API) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	err := a.client.Get(ctx, "/emis/summary", nil, &out)
	return out, err
}
