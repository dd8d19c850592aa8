package cards

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/transactions"
)

// ListResponse is the envelope of GET /cards.
type ListResponse struct {
	Cards []Record `json:"cards"`
}

// CreateRequest adds a card to the user's wallet.
type CreateRequest struct {
	CardNumber     string          `json:"card_number" validate:"required,numeric,min=12,max=19"`
	CardHolderName string          `json:"card_holder_name" validate:"required"`
	ExpiryMonth    int             `json:"expiry_month" validate:"min=1,max=12"`
	ExpiryYear     int             `json:"expiry_year" validate:"required"`
	CVV            string          `json:"cvv" validate:"required,numeric,min=3,max=4"`
	CardType       string          `json:"card_type" validate:"required"`
	CardBrand      string          `json:"card_brand" validate:"required"`
	CardName       string          `json:"card_name" validate:"required"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	DueDate        int             `json:"due_date,omitempty" validate:"omitempty,min=1,max=31"`
}

// UpdateRequest changes the editable card fields; nil fields are left alone.
type UpdateRequest struct {
	CardName *string `json:"card_name,omitempty"`
	DueDate  *int    `json:"due_date,omitempty"`
}

type pinRequest struct {
	PIN string `json:"pin"`
}

// API wraps the /cards endpoints.
type API struct {
	client *apiclient.Client
}

// NewAPI binds the card endpoints to client.
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

func cardPath(id string) string {
	return "/cards/" + url.PathEscape(id)
}

// List returns every card of the signed-in user.
func (a *API) List(ctx context.Context) (ListResponse, error) {
	var resp ListResponse
	err := a.client.Get(ctx, "/cards", nil, &resp)
	return resp, err
}

// Get returns one card.
func (a *API) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, cardPath(id), nil, &rec)
	return rec, err
}

// Create adds a card.
func (a *API) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, "/cards", req, &out)
	return out, err
}

// Update edits a card's name or due date.
func (a *API) Update(ctx context.Context, id string, req UpdateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, cardPath(id), req, &out)
	return out, err
}

// Block freezes a card.
func (a *API) Block(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, cardPath(id)+"/block", nil, &out)
	return out, err
}

// Unblock reactivates a blocked card.
func (a *API) Unblock(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, cardPath(id)+"/unblock", nil, &out)
	return out, err
}

// UpdatePIN sets a new card PIN.
func (a *API) UpdatePIN(ctx context.Context, id, pin string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, cardPath(id)+"/pin", pinRequest{PIN: pin}, &out)
	return out, err
}

// Transactions lists the transactions of one card. Only the paging, status
// and type filters apply.
func (a *API) Transactions(ctx context.Context, id string, f transactions.Filters) (transactions.ListResponse, error) {
	query := apiclient.NewQuery().
		Int("page", f.Page).
		Int("per_page", f.PerPage).
		String("status", f.Status).
		String("type", f.Type).
		Values()

	var resp transactions.ListResponse
	err := a.client.Get(ctx, cardPath(id)+"/transactions", query, &resp)
	return resp, err
}

// Delete removes a card.
func (a *API) Delete(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Delete(ctx, cardPath(id), &out)
	return out, err
}
