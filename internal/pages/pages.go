// Package pages composes the resource stores into the view models of each
// dashboard screen. A page is built per request: its stores are mounted
// concurrently and its view-local state arrives with the request.
package pages

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/bills"
	"github.com/ccms-app/dashboard/internal/cards"
	"github.com/ccms-app/dashboard/internal/cibil"
	"github.com/ccms-app/dashboard/internal/emis"
	"github.com/ccms-app/dashboard/internal/logging"
	"github.com/ccms-app/dashboard/internal/notifications"
	"github.com/ccms-app/dashboard/internal/transactions"
)

// Pages builds screens against one API client.
type Pages struct {
	auth          *auth.Context
	cards         *cards.API
	transactions  *transactions.API
	bills         *bills.API
	emis          *emis.API
	cibil         *cibil.API
	notifications *notifications.API
	logger        *slog.Logger
}

// New wires every resource API to client.
func New(client *apiclient.Client, authCtx *auth.Context, logger *slog.Logger) *Pages {
	return &Pages{
		auth:          authCtx,
		cards:         cards.NewAPI(client),
		transactions:  transactions.NewAPI(client),
		bills:         bills.NewAPI(client),
		emis:          emis.NewAPI(client),
		cibil:         cibil.NewAPI(client),
		notifications: notifications.NewAPI(client),
		logger:        logging.Component(logger, "pages"),
	}
}

// mount runs every fetch concurrently and waits for all of them. Fetches
// record failures in their store, so mount itself only fails when ctx ends.
func mount(ctx context.Context, fetches ...func(ctx context.Context)) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fetch := range fetches {
		fetch := fetch
		g.Go(func() error {
			fetch(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// TransactionRow is a transaction joined to the card it was made on.
type TransactionRow struct {
	transactions.View
	CardTitle     string `json:"cardTitle"`
	CategoryLabel string `json:"categoryLabel"`
}

const unknownCard = "—"

func joinCards(txs []transactions.View, cardList []cards.View) []TransactionRow {
	titles := make(map[string]string, len(cardList))
	for _, c := range cardList {
		titles[c.ID] = c.Title
	}
	rows := make([]TransactionRow, 0, len(txs))
	for _, t := range txs {
		title, ok := titles[t.CardID]
		if !ok || title == "" {
			title = unknownCard
		}
		rows = append(rows, TransactionRow{View: t, CardTitle: title, CategoryLabel: transactions.CategoryLabel(t.Category)})
	}
	return rows
}
