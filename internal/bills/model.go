// Package bills lists utility and card bills and pays them.
package bills

import (
	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/money"
	"github.com/ccms-app/dashboard/internal/store"
)

const (
	// StatusPaid is the payment_status of a settled bill.
	StatusPaid = "paid"
	// StatusPending is the list filter for bills still to be paid.
	StatusPending = "pending"

	labelPaid    = "Paid"
	labelPending = "Pending"
)

// Record is a bill as the API returns it.
type Record struct {
	MongoID        string           `json:"_id,omitempty"`
	ID             string           `json:"id,omitempty"`
	UserID         string           `json:"user_id,omitempty"`
	CardID         string           `json:"card_id,omitempty"`
	BillID         string           `json:"bill_id,omitempty"`
	BillerName     string           `json:"biller_name,omitempty"`
	BillerCategory string           `json:"biller_category,omitempty"`
	BillType       string           `json:"bill_type,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	DueDate        string           `json:"due_date,omitempty"`
	PaymentStatus  string           `json:"payment_status,omitempty"`
	BillNumber     string           `json:"bill_number,omitempty"`
	ConsumerNumber string           `json:"consumer_number,omitempty"`
	Description    string           `json:"description,omitempty"`
	IsRecurring    bool             `json:"is_recurring"`
	AutoPayEnabled bool             `json:"auto_pay_enabled"`
	PaidAmount     *decimal.Decimal `json:"paid_amount,omitempty"`
	PaymentDate    string           `json:"payment_date,omitempty"`
	CreatedAt      string           `json:"created_at,omitempty"`
}

// View is a bill ready for display.
type View struct {
	ID            string          `json:"id"`
	CardID        string          `json:"cardId,omitempty"`
	Title         string          `json:"title"`
	Category      string          `json:"category,omitempty"`
	Type          string          `json:"type,omitempty"`
	Amount        string          `json:"amount"`
	AmountValue   decimal.Decimal `json:"amountValue"`
	DueDate       string          `json:"dueDate"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus,omitempty"`
	PaymentDate   string          `json:"paymentDate,omitempty"`
	BillNumber    string          `json:"billNumber,omitempty"`
	Recurring     bool            `json:"recurring"`
	AutoPay       bool            `json:"autoPay"`
}

// Paid reports whether the bill is settled.
func (v View) Paid() bool {
	return v.PaymentStatus == StatusPaid
}

// Normalize maps an API bill onto its display form.
func Normalize(r Record) View {
	return View{
		ID:            store.RecordID(r.MongoID, r.ID),
		CardID:        r.CardID,
		Title:         r.BillerName,
		Category:      r.BillerCategory,
		Type:          r.BillType,
		Amount:        money.INRPtr(r.Amount),
		AmountValue:   money.OrZero(r.Amount),
		DueDate:       r.DueDate,
		Status:        StatusLabel(r.PaymentStatus),
		PaymentStatus: r.PaymentStatus,
		PaymentDate:   r.PaymentDate,
		BillNumber:    r.BillNumber,
		Recurring:     r.IsRecurring,
		AutoPay:       r.AutoPayEnabled,
	}
}

// StatusLabel is "Paid" for settled bills and "Pending" for everything else.
func StatusLabel(paymentStatus string) string {
	if paymentStatus == StatusPaid {
		return labelPaid
	}
	return labelPending
}
