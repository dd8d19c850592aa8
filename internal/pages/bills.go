package pages

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/bills"
	"github.com/ccms-app/dashboard/internal/store"
)

// BillPaymentsView lists every bill and the unpaid ones separately.
type BillPaymentsView struct {
	store.Snapshot[bills.View]
	Pending []bills.View `json:"pending"`
}

// BillPayments is the bill payment screen.
type BillPayments struct {
	bills *bills.Store
}

// BillPayments mounts the bill list.
func (p *Pages) BillPayments(ctx context.Context) (*BillPayments, error) {
	b := &BillPayments{bills: bills.NewStore(p.bills, bills.Filters{})}
	if err := mount(ctx, b.bills.Fetch); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BillPayments) View() BillPaymentsView {
	pending := b.bills.Pending()
	if pending == nil {
		pending = []bills.View{}
	}
	return BillPaymentsView{Snapshot: b.bills.Snapshot(), Pending: pending}
}

// Pay settles a bill; a nil amount pays it in full.
func (b *BillPayments) Pay(ctx context.Context, id string, amount *decimal.Decimal) error {
	return report(ctx, "Payment successful!", "Payment failed", func() error {
		_, err := b.bills.Pay(ctx, id, amount)
		return err
	})
}

// ToggleAutoPay switches automatic payment of a bill.
func (b *BillPayments) ToggleAutoPay(ctx context.Context, id string, enable bool) error {
	msg := "Auto-pay disabled"
	if enable {
		msg = "Auto-pay enabled"
	}
	return report(ctx, msg, "Failed to update auto-pay", func() error {
		return b.bills.ToggleAutoPay(ctx, id, enable)
	})
}

// Create registers a bill.
func (b *BillPayments) Create(ctx context.Context, req bills.CreateRequest) error {
	return report(ctx, "Bill added", "Failed to create bill", func() error {
		_, err := b.bills.Create(ctx, req)
		return err
	})
}

// Delete removes a bill.
func (b *BillPayments) Delete(ctx context.Context, id string) error {
	return report(ctx, "Bill deleted", "Failed to delete bill", func() error {
		return b.bills.Delete(ctx, id)
	})
}
