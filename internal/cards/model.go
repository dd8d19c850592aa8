// Package cards lists and manages the user's credit and debit cards.
package cards

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/money"
	"github.com/ccms-app/dashboard/internal/store"
)

const defaultGradient = "from-indigo-500 to-blue-500"

var gradients = map[string]string{
	"platinum": "from-gray-400 to-gray-600",
	"gold":     "from-yellow-400 to-yellow-600",
	"titanium": "from-gray-300 to-gray-500",
	"silver":   "from-gray-200 to-gray-400",
	"credit":   "from-blue-500 to-indigo-600",
	"debit":    "from-green-500 to-teal-600",
}

// Record is a card as the API returns it.
type Record struct {
	MongoID            string           `json:"_id,omitempty"`
	ID                 string           `json:"id,omitempty"`
	UserID             string           `json:"user_id,omitempty"`
	CardNumber         string           `json:"card_number,omitempty"`
	CardHolderName     string           `json:"card_holder_name,omitempty"`
	CardName           string           `json:"card_name,omitempty"`
	CardType           string           `json:"card_type,omitempty"`
	CardBrand          string           `json:"card_brand,omitempty"`
	CreditLimit        *decimal.Decimal `json:"credit_limit,omitempty"`
	AvailableCredit    *decimal.Decimal `json:"available_credit,omitempty"`
	OutstandingBalance *decimal.Decimal `json:"outstanding_balance,omitempty"`
	DueDate            int              `json:"due_date,omitempty"`
	IsBlocked          bool             `json:"is_blocked"`
	IsActive           bool             `json:"is_active"`
	ExpiryMonth        int              `json:"expiry_month,omitempty"`
	ExpiryYear         int              `json:"expiry_year,omitempty"`
	LastUsed           string           `json:"last_used,omitempty"`
	CreatedAt          string           `json:"created_at,omitempty"`
}

// View is a card ready for display. Secret starts true so the number is
// masked until the user reveals it.
type View struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Number      string `json:"number"`
	Brand       string `json:"brand"`
	Gradient    string `json:"gradient"`
	Limit       string `json:"limit"`
	Outstanding string `json:"outstanding"`
	Available   string `json:"available"`
	Expiry      string `json:"expiry"`
	DueDay      int    `json:"dueDay,omitempty"`
	Blocked     bool   `json:"blocked"`
	Active      bool   `json:"active"`
	Secret      bool   `json:"secret"`

	LimitAmount       decimal.Decimal `json:"limitAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

// Normalize maps an API card onto its display form.
func Normalize(r Record) View {
	return View{
		ID:                store.RecordID(r.MongoID, r.ID),
		Title:             r.CardName,
		Subtitle:          r.CardType + " - " + r.CardBrand,
		Number:            MaskedNumber(r.CardNumber),
		Brand:             r.CardBrand,
		Gradient:          Gradient(r.CardType),
		Limit:             money.INRPtr(r.CreditLimit),
		Outstanding:       money.INRPtr(r.OutstandingBalance),
		Available:         money.INRPtr(r.AvailableCredit),
		Expiry:            Expiry(r.ExpiryMonth, r.ExpiryYear),
		DueDay:            r.DueDate,
		Blocked:           r.IsBlocked,
		Active:            r.IsActive,
		Secret:            true,
		LimitAmount:       money.OrZero(r.CreditLimit),
		OutstandingAmount: money.OrZero(r.OutstandingBalance),
	}
}

// Gradient picks the card face colours for a card type, case-insensitively.
func Gradient(cardType string) string {
	if g, ok := gradients[strings.ToLower(cardType)]; ok {
		return g
	}
	return defaultGradient
}

// MaskedNumber shows only the last four digits of a card number.
func MaskedNumber(number string) string {
	last4 := number
	if len(number) > 4 {
		last4 = number[len(number)-4:]
	}
	return "**** **** **** " + last4
}

// Expiry renders MM/YY, or --/-- when either part is unknown.
func Expiry(month, year int) string {
	if month == 0 || year == 0 {
		return "--/--"
	}
	return fmt.Sprintf("%02d/%02d", month, year%100)
}
