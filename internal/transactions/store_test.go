package transactions

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient/apitest"
)

func listBody() map[string]any {
	return map[string]any{
		"transactions": []map[string]any{
			{
				"_id":               "t1",
				"card_id":           "c1",
				"merchant_name":     "Swiggy",
				"merchant_category": "restaurants",
				"amount":            1249.5,
				"transaction_date":  "2024-05-02T10:00:00",
				"status":            "completed",
			},
		},
		"total":        1,
		"pages":        1,
		"current_page": 2,
		"per_page":     5,
	}
}

func TestStoreFetchMapsFields(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/transactions", http.StatusOK, listBody())

	st := NewStore(NewAPI(srv.Client()), Filters{Page: 2, PerPage: 5, CardID: "c1"})
	st.Fetch(context.Background())

	snap := st.Snapshot()
	if snap.Error != "" || snap.Loading {
		t.Fatalf("unexpected state %+v", snap)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(snap.Items))
	}
	got := snap.Items[0]
	if got.ID != "t1" || got.CardID != "c1" || got.Merchant != "Swiggy" || got.Category != "restaurants" {
		t.Fatalf("unexpected mapping %+v", got)
	}
	if got.Date != "2024-05-02T10:00:00" || got.Amount != "₹1,249.5" {
		t.Fatalf("unexpected date/amount %q %q", got.Date, got.Amount)
	}
	if snap.Pagination.CurrentPage != 2 || snap.Pagination.PerPage != 5 {
		t.Fatalf("unexpected pagination %+v", snap.Pagination)
	}

	q, _ := url.ParseQuery(srv.Last(http.MethodGet, "/transactions").Query)
	if q.Get("page") != "2" || q.Get("per_page") != "5" || q.Get("card_id") != "c1" || q.Has("status") {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestStoreFetchFailure(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/transactions", http.StatusOK, listBody())

	st := NewStore(NewAPI(srv.Client()), Filters{})
	ctx := context.Background()
	st.Fetch(ctx)

	srv.JSON(http.MethodGet, "/transactions", http.StatusInternalServerError, map[string]string{})
	st.Fetch(ctx)

	snap := st.Snapshot()
	if len(snap.Items) != 0 || snap.Error != "Failed to fetch transactions" || snap.Loading {
		t.Fatalf("unexpected failure state %+v", snap)
	}
}

func TestSetFiltersRefetchesOnWatchedKeys(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/transactions", http.StatusOK, listBody())

	st := NewStore(NewAPI(srv.Client()), Filters{Page: 1})
	ctx := context.Background()

	if st.SetFilters(ctx, Filters{Page: 1, Merchant: "Swiggy"}) {
		t.Fatal("merchant is not a watched filter")
	}
	if !st.SetFilters(ctx, Filters{Page: 2, Merchant: "Swiggy"}) {
		t.Fatal("page change should refetch")
	}
	if !st.SetFilters(ctx, Filters{Page: 2, Status: "pending", Merchant: "Swiggy"}) {
		t.Fatal("status change should refetch")
	}
	if n := srv.Count(http.MethodGet, "/transactions"); n != 2 {
		t.Fatalf("expected 2 list calls, got %d", n)
	}
}

func TestRefundRefetches(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/transactions", http.StatusOK, listBody())
	srv.JSON(http.MethodPost, "/transactions/t1/refund", http.StatusOK, map[string]any{"message": "Refund processed"})

	st := NewStore(NewAPI(srv.Client()), Filters{})
	amount := decimal.NewFromInt(100)
	out, err := st.Refund(context.Background(), "t1", &amount)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if out["message"] != "Refund processed" {
		t.Fatalf("unexpected refund body %v", out)
	}

	var body struct {
		Amount decimal.Decimal `json:"amount"`
	}
	srv.Last(http.MethodPost, "/transactions/t1/refund").Decode(t, &body)
	if !body.Amount.Equal(amount) {
		t.Fatalf("expected amount 100, got %s", body.Amount)
	}
	if n := srv.Count(http.MethodGet, "/transactions"); n != 1 {
		t.Fatalf("expected one refetch, got %d", n)
	}
}

func TestRefundFailureKeepsList(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/transactions", http.StatusOK, listBody())
	srv.JSON(http.MethodPost, "/transactions/t1/refund", http.StatusBadRequest, map[string]any{"error": "Already refunded"})

	st := NewStore(NewAPI(srv.Client()), Filters{})
	ctx := context.Background()
	st.Fetch(ctx)

	if _, err := st.Refund(ctx, "t1", nil); err == nil {
		t.Fatal("expected refund error")
	}
	snap := st.Snapshot()
	if snap.Error != "Already refunded" || len(snap.Items) != 1 {
		t.Fatalf("unexpected state %+v", snap)
	}
	if string(srv.Last(http.MethodPost, "/transactions/t1/refund").Body) != "{}" {
		t.Fatalf("full refund should send an empty body")
	}
}

func TestCategoryLabel(t *testing.T) {
	if CategoryLabel("fuel") != "Travel" || CategoryLabel("jewellery") != "Other" {
		t.Fatal("unexpected category labels")
	}
}
