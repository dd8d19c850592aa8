package cibil

import (
	"context"
	"net/http"
	"testing"

	"github.com/ccms-app/dashboard/internal/apiclient/apitest"
)

func TestFetchCurrent(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cibil/current", http.StatusOK, map[string]any{
		"_id":                   "s1",
		"score":                 782,
		"score_date":            "2024-05-01",
		"payment_history_score": 95,
		"total_outstanding":     61300,
		"is_current":            true,
	})

	st := NewStore(NewAPI(srv.Client()))
	st.Fetch(context.Background())

	snap := st.Snapshot()
	if snap.Error != "" || snap.Loading || snap.Current == nil {
		t.Fatalf("unexpected state %+v", snap)
	}
	c := snap.Current
	if c.ID != "s1" || c.Score != 782 || c.Band != "Excellent" || c.Factors.PaymentHistory != 95 || c.TotalOutstanding != "₹61,300" {
		t.Fatalf("unexpected mapping %+v", c)
	}
	if st.Score() != 782 {
		t.Fatalf("unexpected score %d", st.Score())
	}
}

func TestNoScoreIsNotAnError(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cibil/current", http.StatusNotFound, map[string]any{"error": "No CIBIL score found"})

	st := NewStore(NewAPI(srv.Client()))
	st.Fetch(context.Background())

	snap := st.Snapshot()
	if snap.Error != "" || snap.Current != nil || snap.Loading {
		t.Fatalf("404 should leave an empty, error-free state: %+v", snap)
	}
	if st.Score() != 0 {
		t.Fatalf("expected zero score, got %d", st.Score())
	}
}

func TestServerErrorIsReported(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cibil/current", http.StatusInternalServerError, map[string]any{})

	st := NewStore(NewAPI(srv.Client()))
	st.Fetch(context.Background())

	if snap := st.Snapshot(); snap.Error != "Failed to fetch CIBIL score" {
		t.Fatalf("unexpected error %q", snap.Error)
	}
}

func TestFetchHistory(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cibil", http.StatusOK, map[string]any{
		"cibil_scores": []map[string]any{
			{"_id": "s1", "score": 782},
			{"_id": "s0", "score": 690},
		},
		"total": 2,
	})

	st := NewStore(NewAPI(srv.Client()))
	current := false
	st.FetchHistory(context.Background(), Filters{PerPage: 12, CurrentOnly: &current})

	snap := st.Snapshot()
	if len(snap.History) != 2 || snap.History[1].Band != "Fair" {
		t.Fatalf("unexpected history %+v", snap.History)
	}
	if q := srv.Last(http.MethodGet, "/cibil").Query; q != "current_only=false&per_page=12" {
		t.Fatalf("unexpected query %q", q)
	}
}

func TestVerifyReloadsCurrent(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/cibil/current", http.StatusOK, map[string]any{"_id": "s1", "score": 720, "is_verified": true})
	srv.JSON(http.MethodPut, "/cibil/s1/verify", http.StatusOK, map[string]any{"message": "verified"})

	st := NewStore(NewAPI(srv.Client()))
	if err := st.Verify(context.Background(), "s1", ""); err != nil {
		t.Fatalf("verify: %v", err)
	}
	snap := st.Snapshot()
	if snap.Current == nil || !snap.Current.Verified || snap.Loading {
		t.Fatalf("unexpected state %+v", snap)
	}
	if body := string(srv.Last(http.MethodPut, "/cibil/s1/verify").Body); body != "{}" {
		t.Fatalf("unexpected verify body %s", body)
	}
}

func TestCreateFailure(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/cibil", http.StatusBadRequest, map[string]any{"error": "Score must be between 300 and 900"})

	st := NewStore(NewAPI(srv.Client()))
	if _, err := st.Create(context.Background(), CreateRequest{Score: 1000, ScoreDate: "2024-05-01"}); err == nil {
		t.Fatal("expected create error")
	}
	if snap := st.Snapshot(); snap.Error != "Score must be between 300 and 900" || snap.Loading {
		t.Fatalf("unexpected state %+v", snap)
	}
	if n := srv.Count(http.MethodGet, "/cibil/current"); n != 0 {
		t.Fatalf("failed create must not reload, got %d", n)
	}
}

func TestBand(t *testing.T) {
	cases := map[int]string{900: "Excellent", 749: "Good", 650: "Fair", 420: "Poor", 0: "Not available"}
	for score, want := range cases {
		if got := Band(score); got != want {
			t.Errorf("Band(%d) = %q, want %q", score, got, want)
		}
	}
}
