// Package transactions lists card transactions and issues refunds.
package transactions

import (
	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/money"
	"github.com/ccms-app/dashboard/internal/store"
)

var categoryLabels = map[string]string{
	"online_shopping": "Shopping",
	"restaurants":     "Food",
	"groceries":       "Groceries",
	"subscriptions":   "Entertainment",
	"travel":          "Travel",
	"fuel":            "Travel",
	"utilities":       "Bills",
	"healthcare":      "Healthcare",
	"education":       "Education",
}

// Record is a transaction as the API returns it.
type Record struct {
	MongoID          string           `json:"_id,omitempty"`
	ID               string           `json:"id,omitempty"`
	UserID           string           `json:"user_id,omitempty"`
	CardID           string           `json:"card_id,omitempty"`
	TransactionID    string           `json:"transaction_id,omitempty"`
	MerchantName     string           `json:"merchant_name,omitempty"`
	MerchantCategory string           `json:"merchant_category,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Description      string           `json:"description,omitempty"`
	TransactionType  string           `json:"transaction_type,omitempty"`
	TransactionDate  string           `json:"transaction_date,omitempty"`
	Status           string           `json:"status,omitempty"`
	Location         string           `json:"location,omitempty"`
	PaymentMethod    string           `json:"payment_method,omitempty"`
	ReferenceNumber  string           `json:"reference_number,omitempty"`
	IsRecurring      bool             `json:"is_recurring"`
	IsInternational  bool             `json:"is_international"`
	CreatedAt        string           `json:"created_at,omitempty"`
}

// View is a transaction ready for display.
type View struct {
	ID            string          `json:"id"`
	CardID        string          `json:"cardId"`
	Reference     string          `json:"reference,omitempty"`
	Merchant      string          `json:"merchant"`
	Category      string          `json:"category"`
	Description   string          `json:"description,omitempty"`
	Type          string          `json:"type,omitempty"`
	Status        string          `json:"status,omitempty"`
	Date          string          `json:"date"`
	Amount        string          `json:"amount"`
	AmountValue   decimal.Decimal `json:"amountValue"`
	Recurring     bool            `json:"recurring"`
	International bool            `json:"international"`
}

// Normalize maps an API transaction onto its display form.
func Normalize(r Record) View {
	return View{
		ID:            store.RecordID(r.MongoID, r.ID),
		CardID:        r.CardID,
		Reference:     r.TransactionID,
		Merchant:      r.MerchantName,
		Category:      r.MerchantCategory,
		Description:   r.Description,
		Type:          r.TransactionType,
		Status:        r.Status,
		Date:          r.TransactionDate,
		Amount:        money.INRPtr(r.Amount),
		AmountValue:   money.OrZero(r.Amount),
		Recurring:     r.IsRecurring,
		International: r.IsInternational,
	}
}

// CategoryLabel turns a merchant category into the spending bucket shown on
// the dashboard. Unknown categories fall into "Other".
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return "Other"
}
