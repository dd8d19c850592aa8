package pages

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/bills"
	"github.com/ccms-app/dashboard/internal/cards"
	"github.com/ccms-app/dashboard/internal/cibil"
	"github.com/ccms-app/dashboard/internal/emis"
	"github.com/ccms-app/dashboard/internal/money"
	"github.com/ccms-app/dashboard/internal/notifications"
	"github.com/ccms-app/dashboard/internal/transactions"
	"github.com/ccms-app/dashboard/internal/users"
)

const dashboardListSize = 5

// DashboardState is the view-local state of the dashboard: which card
// numbers are shown unmasked and which card a modal was opened for.
type DashboardState struct {
	Revealed  []string
	PayCardID string
	EMICardID string
}

// EMISummary is the EMI tile of the dashboard.
type EMISummary struct {
	Active         int             `json:"active"`
	Remaining      string          `json:"remaining"`
	RemainingValue decimal.Decimal `json:"remainingValue"`
}

// CibilSummary is the score tile of the dashboard.
type CibilSummary struct {
	Score int    `json:"score"`
	Band  string `json:"band"`
}

// DashboardView is everything the dashboard screen renders.
type DashboardView struct {
	User          *users.User          `json:"user"`
	Cards         []cards.View         `json:"cards"`
	SelectedCard  *cards.View          `json:"selectedCard"`
	PaymentOpen   bool                 `json:"paymentOpen"`
	EMIOpen       bool                 `json:"emiOpen"`
	Transactions  []TransactionRow     `json:"transactions"`
	PendingBills  []bills.View         `json:"pendingBills"`
	EMI           EMISummary           `json:"emi"`
	Cibil         CibilSummary         `json:"cibil"`
	Notifications []notifications.View `json:"notifications"`
	UnreadCount   int                  `json:"unreadCount"`

	TotalOutstanding      string          `json:"totalOutstanding"`
	TotalOutstandingValue decimal.Decimal `json:"totalOutstandingValue"`
	UtilizationPercent    int64           `json:"utilizationPercent"`

	Loading bool              `json:"loading"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Dashboard is the landing screen.
type Dashboard struct {
	cards         *cards.Store
	transactions  *transactions.Store
	bills         *bills.Store
	emis          *emis.Store
	cibil         *cibil.Store
	notifications *notifications.Store

	user       *users.User
	state      DashboardState
	emiSummary EMISummary
}

// Dashboard mounts the dashboard's stores. When no EMIs are listed the EMI
// tile falls back to the server-side summary.
func (p *Pages) Dashboard(ctx context.Context, state DashboardState) (*Dashboard, error) {
	d := &Dashboard{
		cards:         cards.NewStore(p.cards),
		transactions:  transactions.NewStore(p.transactions, transactions.Filters{PerPage: dashboardListSize}),
		bills:         bills.NewStore(p.bills, bills.Filters{PerPage: dashboardListSize, Status: bills.StatusPending}),
		emis:          emis.NewStore(p.emis, emis.Filters{}),
		cibil:         cibil.NewStore(p.cibil),
		notifications: notifications.NewStore(p.notifications, notifications.Filters{PerPage: dashboardListSize, UnreadOnly: boolPtr(true)}),
		user:          p.auth.User(),
		state:         state,
	}
	err := mount(ctx,
		d.cards.Fetch,
		d.transactions.Fetch,
		d.bills.Fetch,
		d.emis.Fetch,
		d.cibil.Fetch,
		d.notifications.Fetch,
	)
	if err != nil {
		return nil, err
	}

	d.emiSummary = d.loadEMISummary(ctx, p.logger)
	return d, nil
}

func (d *Dashboard) loadEMISummary(ctx context.Context, logger *slog.Logger) EMISummary {
	if len(d.emis.Snapshot().Items) > 0 {
		active, remaining := d.emis.Totals()
		return emiSummary(active, remaining)
	}
	summary, err := d.emis.Summary(ctx)
	if err != nil {
		logger.Debug("emi summary unavailable", slog.Any("error", err))
		return emiSummary(0, decimal.Zero)
	}
	return emiSummary(summary.ActiveEMIs, summary.TotalRemaining)
}

func emiSummary(active int, remaining decimal.Decimal) EMISummary {
	return EMISummary{Active: active, Remaining: money.INR(remaining), RemainingValue: remaining}
}

// View assembles the screen from the mounted stores.
func (d *Dashboard) View() DashboardView {
	cardSnap := d.cards.Snapshot()
	txSnap := d.transactions.Snapshot()
	billSnap := d.bills.Snapshot()
	emiSnap := d.emis.Snapshot()
	scoreSnap := d.cibil.Snapshot()
	noteSnap := d.notifications.Snapshot()

	revealed := make(map[string]bool, len(d.state.Revealed))
	for _, id := range d.state.Revealed {
		revealed[id] = !revealed[id]
	}

	view := DashboardView{
		User:          d.user,
		Cards:         make([]cards.View, 0, len(cardSnap.Items)),
		Transactions:  joinCards(txSnap.Items, cardSnap.Items),
		PendingBills:  d.bills.Pending(),
		EMI:           d.emiSummary,
		Notifications: noteSnap.Items,
		UnreadCount:   d.notifications.UnreadCount(),
		Loading:       cardSnap.Loading || txSnap.Loading || billSnap.Loading,
	}
	if view.PendingBills == nil {
		view.PendingBills = []bills.View{}
	}

	limit, outstanding := decimal.Zero, decimal.Zero
	for _, c := range cardSnap.Items {
		if revealed[c.ID] {
			c.Secret = !c.Secret
		}
		limit = limit.Add(c.LimitAmount)
		outstanding = outstanding.Add(c.OutstandingAmount)
		view.Cards = append(view.Cards, c)
	}
	view.TotalOutstanding = money.INR(outstanding)
	view.TotalOutstandingValue = outstanding
	view.UtilizationPercent = Utilization(outstanding, limit)

	if id := firstNonEmpty(d.state.PayCardID, d.state.EMICardID); id != "" {
		for i := range view.Cards {
			if view.Cards[i].ID == id {
				c := view.Cards[i]
				view.SelectedCard = &c
				view.PaymentOpen = d.state.PayCardID != ""
				view.EMIOpen = d.state.PayCardID == "" && d.state.EMICardID != ""
				break
			}
		}
	}

	if scoreSnap.Current != nil {
		view.Cibil = CibilSummary{Score: scoreSnap.Current.Score, Band: scoreSnap.Current.Band}
	} else {
		view.Cibil = CibilSummary{Band: cibil.Band(0)}
	}

	errs := map[string]string{}
	for name, msg := range map[string]string{
		"cards":         cardSnap.Error,
		"transactions":  txSnap.Error,
		"bills":         billSnap.Error,
		"emis":          emiSnap.Error,
		"cibil":         scoreSnap.Error,
		"notifications": noteSnap.Error,
	} {
		if msg != "" {
			errs[name] = msg
		}
	}
	if len(errs) > 0 {
		view.Errors = errs
	}
	return view
}

// Utilization is outstanding as a whole percentage of limit, rounded half
// up. A zero limit counts as one rupee.
func Utilization(outstanding, limit decimal.Decimal) int64 {
	if limit.IsZero() {
		limit = decimal.NewFromInt(1)
	}
	return outstanding.Div(limit).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func boolPtr(v bool) *bool {
	return &v
}
