package pages

import (
	"context"

	"github.com/ccms-app/dashboard/internal/cards"
	"github.com/ccms-app/dashboard/internal/store"
	"github.com/ccms-app/dashboard/internal/transactions"
)

const transactionsPerPage = 10

// TransactionsView is one page of the transaction history.
type TransactionsView struct {
	Rows       []TransactionRow `json:"rows"`
	Page       int              `json:"page"`
	Pagination store.Pagination `json:"pagination"`
	HasPrev    bool             `json:"hasPrev"`
	HasNext    bool             `json:"hasNext"`
	Loading    bool             `json:"loading"`
	Error      string           `json:"error,omitempty"`
}

// Transactions is the paged transaction history.
type Transactions struct {
	page         int
	cards        *cards.Store
	transactions *transactions.Store
}

// Transactions mounts page number page (counted from 1) of the history.
func (p *Pages) Transactions(ctx context.Context, page int) (*Transactions, error) {
	if page < 1 {
		page = 1
	}
	t := &Transactions{
		page:         page,
		cards:        cards.NewStore(p.cards),
		transactions: transactions.NewStore(p.transactions, transactions.Filters{Page: page, PerPage: transactionsPerPage}),
	}
	if err := mount(ctx, t.cards.Fetch, t.transactions.Fetch); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Transactions) View() TransactionsView {
	snap := t.transactions.Snapshot()
	return TransactionsView{
		Rows:       joinCards(snap.Items, t.cards.Cards()),
		Page:       t.page,
		Pagination: snap.Pagination,
		HasPrev:    t.page > 1,
		HasNext:    t.page < snap.Pagination.Pages,
		Loading:    snap.Loading,
		Error:      snap.Error,
	}
}
