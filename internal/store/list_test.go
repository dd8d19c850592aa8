package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ccms-app/dashboard/internal/apiclient"
)

type record struct{ Name string }
type view struct{ Title string }

func normalize(r record) view { return view{Title: "[" + r.Name + "]"} }

func TestFetchSuccess(t *testing.T) {
	list := NewList(func(context.Context) ([]record, Meta, error) {
		return []record{{Name: "a"}, {Name: "b"}}, Meta{Total: 2, Pages: 1}, nil
	}, normalize, "Failed to fetch things")

	list.Fetch(context.Background())
	snap := list.Snapshot()

	if snap.Loading || snap.Error != "" {
		t.Fatalf("expected idle success state, got %+v", snap)
	}
	want := []view{{Title: "[a]"}, {Title: "[b]"}}
	if !reflect.DeepEqual(snap.Items, want) {
		t.Fatalf("unexpected items %+v", snap.Items)
	}
	if snap.Pagination != (Pagination{Total: 2, Pages: 1, CurrentPage: 1, PerPage: 10}) {
		t.Fatalf("unexpected pagination %+v", snap.Pagination)
	}
}

func TestFetchFailureResetsItems(t *testing.T) {
	fail := false
	list := NewList(func(context.Context) ([]record, Meta, error) {
		if fail {
			return nil, Meta{}, &apiclient.Error{Status: 500}
		}
		return []record{{Name: "a"}}, Meta{Total: 1, Pages: 1, CurrentPage: 1, PerPage: 5}, nil
	}, normalize, "Failed to fetch things")

	ctx := context.Background()
	list.Fetch(ctx)
	fail = true
	list.Fetch(ctx)

	snap := list.Snapshot()
	if len(snap.Items) != 0 {
		t.Fatalf("expected empty items after failure, got %+v", snap.Items)
	}
	if snap.Loading {
		t.Fatal("loading should be cleared")
	}
	if snap.Error != "Failed to fetch things" {
		t.Fatalf("expected fallback message, got %q", snap.Error)
	}
	if snap.Pagination != DefaultPagination() {
		t.Fatalf("expected default pagination, got %+v", snap.Pagination)
	}
}

func TestRefetchIsIdempotent(t *testing.T) {
	list := NewList(func(context.Context) ([]record, Meta, error) {
		return []record{{Name: "x"}}, Meta{Total: 1}, nil
	}, normalize, "")

	ctx := context.Background()
	list.Fetch(ctx)
	first := list.Snapshot()
	list.Fetch(ctx)
	second := list.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("snapshots differ: %+v vs %+v", first, second)
	}
}

func TestMutateFailureKeepsItems(t *testing.T) {
	list := NewList(func(context.Context) ([]record, Meta, error) {
		return []record{{Name: "kept"}}, Meta{}, nil
	}, normalize, "")
	ctx := context.Background()
	list.Fetch(ctx)

	wantErr := &apiclient.Error{Status: 400, Message: "Invalid amount"}
	err := list.Mutate(ctx, "Failed to pay", true, func(context.Context) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected mutation error to be returned, got %v", err)
	}

	snap := list.Snapshot()
	if snap.Error != "Invalid amount" {
		t.Fatalf("expected server message, got %q", snap.Error)
	}
	if len(snap.Items) != 1 || snap.Items[0].Title != "[kept]" {
		t.Fatalf("items should be untouched, got %+v", snap.Items)
	}
	if snap.Loading {
		t.Fatal("loading should be cleared")
	}
}

func TestMutateRefetches(t *testing.T) {
	loads := 0
	list := NewList(func(context.Context) ([]record, Meta, error) {
		loads++
		return nil, Meta{}, nil
	}, normalize, "")

	calls := 0
	err := list.Mutate(context.Background(), "x", true, func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if calls != 1 || loads != 1 {
		t.Fatalf("expected one call and one refetch, got %d calls %d loads", calls, loads)
	}

	_ = list.Mutate(context.Background(), "x", false, func(context.Context) error { return nil })
	if loads != 1 {
		t.Fatalf("mutation without refetch should not reload, got %d loads", loads)
	}
}

func TestLoadingDuringFetch(t *testing.T) {
	var list *List[record, view]
	var during bool
	list = NewList(func(context.Context) ([]record, Meta, error) {
		during = list.Snapshot().Loading
		return nil, Meta{}, nil
	}, normalize, "")

	list.Fetch(context.Background())
	if !during {
		t.Fatal("expected loading while the fetch is in flight")
	}
	if list.Snapshot().Loading {
		t.Fatal("expected loading cleared afterwards")
	}
}

func TestRecordID(t *testing.T) {
	if RecordID("mongo", "plain") != "mongo" || RecordID("", "plain") != "plain" {
		t.Fatal("RecordID should prefer _id")
	}
}
