package pages

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/emis"
	"github.com/ccms-app/dashboard/internal/store"
)

// EMIManagerView lists EMIs with their running totals.
type EMIManagerView struct {
	store.Snapshot[emis.View]
	Summary EMISummary `json:"summary"`
}

// EMIManager is the EMI management screen.
type EMIManager struct {
	emis *emis.Store
}

// EMIManager mounts the EMI list.
func (p *Pages) EMIManager(ctx context.Context, filters emis.Filters) (*EMIManager, error) {
	m := &EMIManager{emis: emis.NewStore(p.emis, filters)}
	if err := mount(ctx, m.emis.Fetch); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *EMIManager) View() EMIManagerView {
	active, remaining := m.emis.Totals()
	return EMIManagerView{Snapshot: m.emis.Snapshot(), Summary: emiSummary(active, remaining)}
}

// Convert turns a purchase into an EMI.
func (m *EMIManager) Convert(ctx context.Context, req emis.CreateRequest) error {
	return report(ctx, "EMI created successfully!", "Failed to create EMI", func() error {
		_, err := m.emis.Create(ctx, req)
		return err
	})
}

// Pay records one instalment; a nil amount pays the scheduled instalment.
func (m *EMIManager) Pay(ctx context.Context, id string, amount *decimal.Decimal, date string) error {
	return report(ctx, "EMI payment successful!", "Failed to pay EMI", func() error {
		_, err := m.emis.Pay(ctx, id, amount, date)
		return err
	})
}

// PreClose settles the remaining balance early.
func (m *EMIManager) PreClose(ctx context.Context, id string, amount *decimal.Decimal) error {
	return report(ctx, "EMI pre-closed", "Failed to pre-close EMI", func() error {
		_, err := m.emis.PreClose(ctx, id, amount)
		return err
	})
}

// ToggleAutoPay switches automatic instalments on day of the month.
func (m *EMIManager) ToggleAutoPay(ctx context.Context, id string, enable bool, day int) error {
	msg := "Auto-pay disabled"
	if enable {
		msg = "Auto-pay enabled"
	}
	return report(ctx, msg, "Failed to update auto-pay", func() error {
		return m.emis.ToggleAutoPay(ctx, id, enable, day)
	})
}

// Cancel drops an EMI plan.
func (m *EMIManager) Cancel(ctx context.Context, id string) error {
	return report(ctx, "EMI cancelled", "Failed to cancel EMI", func() error {
		return m.emis.Cancel(ctx, id)
	})
}

// CalculateEMI prices an EMI without creating it or loading the list.
func (p *Pages) CalculateEMI(ctx context.Context, req emis.CalculateRequest) (apiclient.Result, error) {
	return p.emis.Calculate(ctx, req)
}
