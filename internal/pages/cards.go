package pages

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/cards"
	"github.com/ccms-app/dashboard/internal/navigation"
	"github.com/ccms-app/dashboard/internal/store"
	"github.com/ccms-app/dashboard/internal/toast"
	"github.com/ccms-app/dashboard/internal/transactions"
)

// CardsPath is the card list screen.
const CardsPath = "/cards"

const cardTransactionsSize = 10

// CardDetailsView is one card with its latest transactions.
type CardDetailsView struct {
	Card         cards.View          `json:"card"`
	Transactions []transactions.View `json:"transactions"`
}

// CardDetails loads a card and its last transactions. Any failure sends the
// user back to the card list.
func (p *Pages) CardDetails(ctx context.Context, id string, reveal bool) (CardDetailsView, error) {
	rec, err := p.cards.Get(ctx, id)
	if err != nil {
		return CardDetailsView{}, p.leaveCard(ctx, id, err)
	}
	txs, err := p.cards.Transactions(ctx, id, transactions.Filters{PerPage: cardTransactionsSize})
	if err != nil {
		return CardDetailsView{}, p.leaveCard(ctx, id, err)
	}

	view := CardDetailsView{Card: cards.Normalize(rec), Transactions: make([]transactions.View, 0, len(txs.Transactions))}
	if reveal {
		view.Card.Secret = false
	}
	for _, t := range txs.Transactions {
		view.Transactions = append(view.Transactions, transactions.Normalize(t))
	}
	return view, nil
}

func (p *Pages) leaveCard(ctx context.Context, id string, err error) error {
	p.logger.Warn("card details unavailable", slog.String("card_id", id), slog.Any("error", err))
	// The client already sent an expired session to sign-in.
	if apiclient.StatusOf(err) != http.StatusUnauthorized {
		navigation.FromContext(ctx).Redirect(CardsPath)
	}
	return err
}

// MyCardsView is the card management screen.
type MyCardsView struct {
	store.Snapshot[cards.View]
}

// MyCards is the card list with its management actions.
type MyCards struct {
	cards *cards.Store
}

// MyCards mounts the card list.
func (p *Pages) MyCards(ctx context.Context) (*MyCards, error) {
	m := &MyCards{cards: cards.NewStore(p.cards)}
	if err := mount(ctx, m.cards.Fetch); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MyCards) View() MyCardsView {
	return MyCardsView{Snapshot: m.cards.Snapshot()}
}

// Add creates a card.
func (m *MyCards) Add(ctx context.Context, req cards.CreateRequest) error {
	return report(ctx, "Card added successfully!", "Failed to add card", func() error {
		_, err := m.cards.Add(ctx, req)
		return err
	})
}

// Block freezes a card.
func (m *MyCards) Block(ctx context.Context, id string) error {
	return report(ctx, "Card blocked", "Failed to block card", func() error {
		return m.cards.Block(ctx, id)
	})
}

// Unblock reactivates a card.
func (m *MyCards) Unblock(ctx context.Context, id string) error {
	return report(ctx, "Card unblocked", "Failed to unblock card", func() error {
		return m.cards.Unblock(ctx, id)
	})
}

// UpdatePIN changes a card's PIN.
func (m *MyCards) UpdatePIN(ctx context.Context, id, pin string) error {
	return report(ctx, "PIN updated", "Failed to update PIN", func() error {
		return m.cards.UpdatePIN(ctx, id, pin)
	})
}

// Delete removes a card.
func (m *MyCards) Delete(ctx context.Context, id string) error {
	return report(ctx, "Card deleted", "Failed to delete card", func() error {
		return m.cards.Delete(ctx, id)
	})
}

// report runs action and raises a toast with its outcome: success on nil,
// otherwise the server message or fallback.
func report(ctx context.Context, success, fallback string, action func() error) error {
	if err := action(); err != nil {
		toast.Error(ctx, apiclient.MessageOr(err, fallback))
		return err
	}
	toast.Success(ctx, success)
	return nil
}
