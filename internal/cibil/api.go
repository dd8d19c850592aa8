package cibil

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Filters narrows the score history listing.
type Filters struct {
	Page        int   `json:"page,omitempty"`
	PerPage     int   `json:"per_page,omitempty"`
	CurrentOnly *bool `json:"current_only,omitempty"`
}

// Values encodes f as query parameters.
func (f Filters) Values() url.Values {
	return apiclient.NewQuery().
		Int("page", f.Page).
		Int("per_page", f.PerPage).
		Bool("current_only", f.CurrentOnly).
		Values()
}

// ListResponse is the envelope of GET /cibil.
type ListResponse struct {
	Scores []Record `json:"cibil_scores"`
	store.Meta
}

// CreateRequest records a new score report.
type CreateRequest struct {
	Score                  int              `json:"score" validate:"required,min=300,max=900"`
	ScoreDate              string           `json:"score_date" validate:"required"`
	ScoreType              string           `json:"score_type,omitempty"`
	PaymentHistoryScore    int              `json:"payment_history_score,omitempty"`
	CreditUtilizationScore int              `json:"credit_utilization_score,omitempty"`
	CreditAgeScore         int              `json:"credit_age_score,omitempty"`
	CreditMixScore         int              `json:"credit_mix_score,omitempty"`
	NewCreditScore         int              `json:"new_credit_score,omitempty"`
	TotalAccounts          int              `json:"total_accounts,omitempty"`
	ActiveAccounts         int              `json:"active_accounts,omitempty"`
	ClosedAccounts         int              `json:"closed_accounts,omitempty"`
	CreditInquiries        int              `json:"credit_inquiries,omitempty"`
	HardInquiries          int              `json:"hard_inquiries,omitempty"`
	SoftInquiries          int              `json:"soft_inquiries,omitempty"`
	TotalCreditLimit       *decimal.Decimal `json:"total_credit_limit,omitempty"`
	TotalOutstanding       *decimal.Decimal `json:"total_outstanding,omitempty"`
	OldestAccountAge       int              `json:"oldest_account_age,omitempty"`
	NewestAccountAge       int              `json:"newest_account_age,omitempty"`
	LatePayments           int              `json:"late_payments,omitempty"`
	MissedPayments         int              `json:"missed_payments,omitempty"`
	Defaults               int              `json:"defaults,omitempty"`
	Bankruptcies           int              `json:"bankruptcies,omitempty"`
	Collections            int              `json:"collections,omitempty"`
	ReportNumber           string           `json:"report_number,omitempty"`
	BureauReference        string           `json:"bureau_reference,omitempty"`
	Notes                  string           `json:"notes,omitempty"`
}

type verifyRequest struct {
	VerificationDate string `json:"verification_date,omitempty"`
}

// API wraps the /cibil endpoints.
type API struct {
	client *apiclient.Client
}

// NewAPI binds the CIBIL endpoints to client.
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

func scorePath(id string) string {
	return "/cibil/" + url.PathEscape(id)
}

// List returns one page of score history.
func (a *API) List(ctx context.Context, f Filters) (ListResponse, error) {
	var resp ListResponse
	err := a.client.Get(ctx, "/cibil", f.Values(), &resp)
	return resp, err
}

// Current returns the latest score. The API answers 404 when the user has
// none yet.
func (a *API) Current(ctx context.Context) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, "/cibil/current", nil, &rec)
	return rec, err
}

// Get returns one score report.
func (a *API) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, scorePath(id), nil, &rec)
	return rec, err
}

// Create records a score report.
func (a *API) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, "/cibil", req, &out)
	return out, err
}

// Verify marks a report as verified on date, or today when date is empty.
func (a *API) Verify(ctx context.Context, id, date string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, scorePath(id)+"/verify", verifyRequest{VerificationDate: date}, &out)
	return out, err
}

// Update edits arbitrary report fields.
func (a *API) Update(ctx context.Context, id string, fields map[string]any) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, scorePath(id), fields, &out)
	return out, err
}

// Delete removes a report.
func (a *API) Delete(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Delete(ctx, scorePath(id), &out)
	return out, err
}

// Trend returns the score movement over the last days days.
func (a *API) Trend(ctx context.Context, days int) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Get(ctx, "/cibil/trend", apiclient.NewQuery().Int("days", days).Values(), &out)
	return out, err
}

// Summary returns the API's score overview.
func (a *API) Summary(ctx context.Context) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Get(ctx, "/cibil/summary", nil, &out)
	return out, err
}
