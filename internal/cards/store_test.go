package cards

import (
	"context"
	"net/http"
	"testing"

	"github.com/ccms-app/dashboard/internal/apiclient/apitest"
	"github.com/ccms-app/dashboard/internal/transactions"
)

var platinum = map[string]any{
	"_id":                 "665f1c2e9b1d",
	"card_name":           "HDFC Regalia",
	"card_type":           "Platinum",
	"card_brand":          "Visa",
	"card_number":         "4111111111114321",
	"credit_limit":        300000,
	"available_credit":    251500,
	"outstanding_balance": 48500,
	"expiry_month":        8,
	"expiry_year":         2027,
	"is_active":           true,
}

func TestNormalizeCard(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cards", http.StatusOK, map[string]any{"cards": []any{platinum}})

	st := NewStore(NewAPI(srv.Client()))
	st.Fetch(context.Background())

	snap := st.Snapshot()
	if snap.Error != "" || len(snap.Items) != 1 {
		t.Fatalf("unexpected state %+v", snap)
	}
	c := snap.Items[0]
	checks := map[string][2]string{
		"id":          {c.ID, "665f1c2e9b1d"},
		"title":       {c.Title, "HDFC Regalia"},
		"subtitle":    {c.Subtitle, "Platinum - Visa"},
		"number":      {c.Number, "**** **** **** 4321"},
		"gradient":    {c.Gradient, "from-gray-400 to-gray-600"},
		"limit":       {c.Limit, "₹3,00,000"},
		"outstanding": {c.Outstanding, "₹48,500"},
		"expiry":      {c.Expiry, "08/27"},
	}
	for field, pair := range checks {
		if pair[0] != pair[1] {
			t.Errorf("%s = %q, want %q", field, pair[0], pair[1])
		}
	}
	if !c.Secret {
		t.Error("cards must start masked")
	}
	if auth := srv.Last(http.MethodGet, "/cards").Header.Get("Authorization"); auth != "Bearer "+apitest.Token {
		t.Errorf("unexpected authorization header %q", auth)
	}
}

func TestNormalizeFallbacks(t *testing.T) {
	v := Normalize(Record{ID: "7", CardType: "unknown"})
	if v.ID != "7" || v.Gradient != defaultGradient || v.Expiry != "--/--" || v.Limit != "₹0" {
		t.Fatalf("unexpected fallbacks %+v", v)
	}
	if Gradient("DEBIT") != "from-green-500 to-teal-600" {
		t.Fatal("gradient lookup should ignore case")
	}
}

func TestFetchFailureEmptiesCards(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cards", http.StatusOK, map[string]any{"cards": []any{platinum}})

	st := NewStore(NewAPI(srv.Client()))
	ctx := context.Background()
	st.Fetch(ctx)
	srv.JSON(http.MethodGet, "/cards", http.StatusServiceUnavailable, map[string]any{"error": "Database unavailable"})
	st.Fetch(ctx)

	snap := st.Snapshot()
	if len(snap.Items) != 0 || snap.Error != "Database unavailable" || snap.Loading {
		t.Fatalf("unexpected state %+v", snap)
	}
}

func TestBlockRefetchesAndPINDoesNot(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cards", http.StatusOK, map[string]any{"cards": []any{platinum}})
	srv.JSON(http.MethodPut, "/cards/c1/block", http.StatusOK, map[string]any{"message": "Card blocked"})
	srv.JSON(http.MethodPut, "/cards/c1/pin", http.StatusOK, map[string]any{"message": "PIN updated"})

	st := NewStore(NewAPI(srv.Client()))
	ctx := context.Background()

	if err := st.Block(ctx, "c1"); err != nil {
		t.Fatalf("block: %v", err)
	}
	if n := srv.Count(http.MethodGet, "/cards"); n != 1 {
		t.Fatalf("expected one refetch after block, got %d", n)
	}

	if err := st.UpdatePIN(ctx, "c1", "4321"); err != nil {
		t.Fatalf("pin: %v", err)
	}
	if n := srv.Count(http.MethodGet, "/cards"); n != 1 {
		t.Fatalf("pin update must not refetch, got %d list calls", n)
	}
	var body pinRequest
	srv.Last(http.MethodPut, "/cards/c1/pin").Decode(t, &body)
	if body.PIN != "4321" {
		t.Fatalf("unexpected pin body %+v", body)
	}
}

func TestDeleteFailureReturnsError(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cards", http.StatusOK, map[string]any{"cards": []any{platinum}})

	st := NewStore(NewAPI(srv.Client()))
	ctx := context.Background()
	st.Fetch(ctx)

	err := st.Delete(ctx, "missing")
	if err == nil {
		t.Fatal("expected delete error")
	}
	snap := st.Snapshot()
	if snap.Error != "Not found" || len(snap.Items) != 1 {
		t.Fatalf("delete failure should keep cards, got %+v", snap)
	}
}

func TestCardTransactionsQuery(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cards/c1/transactions", http.StatusOK, map[string]any{
		"transactions": []any{map[string]any{"_id": "t1", "amount": 10}},
		"total":        1,
	})

	api := NewAPI(srv.Client())
	resp, err := api.Transactions(context.Background(), "c1", transactions.Filters{PerPage: 10, CardID: "ignored"})
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(resp.Transactions) != 1 || resp.Total != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if q := srv.Last(http.MethodGet, "/cards/c1/transactions").Query; q != "per_page=10" {
		t.Fatalf("unexpected query %q", q)
	}
}
