// Package emis tracks card purchases converted into equated monthly
// instalments.
package emis

import (
	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/money"
	"github.com/ccms-app/dashboard/internal/store"
)

// StatusActive marks an EMI that still has instalments due.
const StatusActive = "active"

// Record is an EMI as the API returns it.
type Record struct {
	MongoID         string           `json:"_id,omitempty"`
	ID              string           `json:"id,omitempty"`
	UserID          string           `json:"user_id,omitempty"`
	CardID          string           `json:"card_id,omitempty"`
	EMIID           string           `json:"emi_id,omitempty"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty"`
	InterestRate    *decimal.Decimal `json:"interest_rate,omitempty"`
	TenureMonths    int              `json:"tenure_months"`
	EMIAmount       *decimal.Decimal `json:"emi_amount,omitempty"`
	TotalAmount     *decimal.Decimal `json:"total_amount,omitempty"`
	TotalPaid       *decimal.Decimal `json:"total_paid,omitempty"`
	RemainingAmount *decimal.Decimal `json:"remaining_amount,omitempty"`
	InterestPaid    *decimal.Decimal `json:"interest_paid,omitempty"`
	StartDate       string           `json:"start_date,omitempty"`
	EndDate         string           `json:"end_date,omitempty"`
	NextDueDate     string           `json:"next_due_date,omitempty"`
	Status          string           `json:"status,omitempty"`
	AutoPayEnabled  bool             `json:"auto_pay_enabled"`
	Description     string           `json:"description,omitempty"`
	MerchantName    string           `json:"merchant_name,omitempty"`
	ProductName     string           `json:"product_name,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
}

// View is an EMI ready for display.
type View struct {
	ID             string          `json:"id"`
	CardID         string          `json:"cardId"`
	Product        string          `json:"product,omitempty"`
	Merchant       string          `json:"merchant,omitempty"`
	Description    string          `json:"description,omitempty"`
	OriginalAmount string          `json:"originalAmount"`
	Monthly        string          `json:"monthly"`
	Remaining      string          `json:"remaining"`
	RemainingValue decimal.Decimal `json:"remainingValue"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	Tenure         int             `json:"tenure"`
	MonthsLeft     int             `json:"monthsLeft"`
	NextDueDate    string          `json:"nextDueDate,omitempty"`
	Status         string          `json:"status"`
	AutoPay        bool            `json:"autoPay"`
}

// Active reports whether instalments are still due.
func (v View) Active() bool {
	return v.Status == StatusActive
}

// Normalize maps an API EMI onto its display form.
func Normalize(r Record) View {
	return View{
		ID:             store.RecordID(r.MongoID, r.ID),
		CardID:         r.CardID,
		Product:        r.ProductName,
		Merchant:       r.MerchantName,
		Description:    r.Description,
		OriginalAmount: money.INRPtr(r.PrincipalAmount),
		Monthly:        money.INRPtr(r.EMIAmount),
		Remaining:      money.INRPtr(r.RemainingAmount),
		RemainingValue: money.OrZero(r.RemainingAmount),
		InterestRate:   money.OrZero(r.InterestRate),
		Tenure:         r.TenureMonths,
		MonthsLeft:     MonthsLeft(r.TenureMonths, money.OrZero(r.TotalPaid), money.OrZero(r.EMIAmount)),
		NextDueDate:    r.NextDueDate,
		Status:         r.Status,
		AutoPay:        r.AutoPayEnabled,
	}
}

// MonthsLeft is the tenure minus the number of whole instalments covered by
// the amount paid so far. It assumes a constant instalment; a zero instalment
// counts nothing as paid and the result never drops below zero.
func MonthsLeft(tenure int, totalPaid, instalment decimal.Decimal) int {
	if !instalment.IsPositive() {
		return tenure
	}
	paid := int(totalPaid.Div(instalment).Floor().IntPart())
	if left := tenure - paid; left > 0 {
		return left
	}
	return 0
}
