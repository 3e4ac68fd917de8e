package directory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/carefinder/internal/domain/service"
)

// --- Mocks ---

type call struct {
	expr  filter.Expression
	limit int
}

type mockStore struct {
	responses [][]service.Record
	respond   func(n, limit int) []service.Record
	errs      []error
	calls     []call
}

func (m *mockStore) FilteredQuery(_ context.Context, expr filter.Expression, limit int) ([]service.Record, error) {
	i := len(m.calls)
	m.calls = append(m.calls, call{expr: expr, limit: limit})
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if m.respond != nil {
		return m.respond(i, limit), nil
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return nil, nil
}

func records(ids ...string) []service.Record {
	out := make([]service.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, service.Record{ID: id, ServiceName: service.NewText("svc " + id)})
	}
	return out
}

func ids(recs []service.Record) []string {
	out := make([]string, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].ID)
	}
	return out
}

func hasCondition(e filter.Expression, want string) bool {
	for _, c := range e.Conditions() {
		if c.String() == want {
			return true
		}
	}
	return false
}

// --- Tests ---

func TestSearch_BlankQuery(t *testing.T) {
	store := &mockStore{}
	svc := New(store)

	got, err := svc.Search(context.Background(), "   ", 10, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
	if len(store.calls) != 0 {
		t.Errorf("store called %d times, want 0", len(store.calls))
	}
}

func TestSearch_StrictThenBroad(t *testing.T) {
	store := &mockStore{
		responses: [][]service.Record{
			records("a", "b"),
			records("b", "c", "d"),
		},
	}
	svc := New(store)

	got, err := svc.Search(context.Background(), "free counselling in Carlton", 10, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.calls) != 2 {
		t.Fatalf("expected 2 store calls, got %d", len(store.calls))
	}
	if store.calls[0].limit != 10 {
		t.Errorf("strict limit = %d, want 10", store.calls[0].limit)
	}
	if store.calls[1].limit != 10 {
		t.Errorf("broad limit = %d, want 10", store.calls[1].limit)
	}
	if !hasCondition(store.calls[0].expr, "suburb equals carlton") {
		t.Errorf("first call should be the strict suburb query, got %v", store.calls[0].expr.Conditions())
	}
	if !hasCondition(store.calls[1].expr, "state contains carlton") {
		t.Errorf("second call should be the broad query, got %v", store.calls[1].expr.Conditions())
	}

	want := []string{"a", "b", "c", "d"}
	if g := ids(got); join(g) != join(want) {
		t.Errorf("ids = %v, want %v", g, want)
	}
}

func TestSearch_BroadSupersetStillFillsLimit(t *testing.T) {
	all := records("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l")
	store := &mockStore{}
	store.respond = func(i, limit int) []service.Record {
		if i == 0 {
			return all[:2]
		}
		return all[:min(limit, len(all))]
	}
	svc := New(store)

	got, err := svc.Search(context.Background(), "counselling in Carlton", 10, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a,b,c,d,e,f,g,h,i,j"
	if join(ids(got)) != want {
		t.Errorf("ids = %v, want %s", ids(got), want)
	}
}

func join(s []string) string {
	return strings.Join(s, ",")
}

func TestSearch_StrictFillsLimit(t *testing.T) {
	store := &mockStore{responses: [][]service.Record{records("a", "b", "c")}}
	svc := New(store)

	got, err := svc.Search(context.Background(), "psychologist in Carlton", 3, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.calls) != 1 {
		t.Errorf("broad stage should be skipped, got %d calls", len(store.calls))
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestSearch_TrimsToLimit(t *testing.T) {
	store := &mockStore{
		responses: [][]service.Record{
			records("a"),
			records("b", "c", "d", "e"),
		},
	}
	svc := New(store)

	got, err := svc.Search(context.Background(), "anxiety in Carlton", 3, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if join(ids(got)) != "a,b,c" {
		t.Errorf("ids = %v, want [a b c]", ids(got))
	}
}

func TestSearch_NoLocationSkipsStrict(t *testing.T) {
	store := &mockStore{responses: [][]service.Record{records("x")}}
	svc := New(store)

	got, err := svc.Search(context.Background(), "anxiety support", 5, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.calls) != 1 {
		t.Fatalf("expected a single broad call, got %d", len(store.calls))
	}
	if store.calls[0].limit != 5 {
		t.Errorf("limit = %d, want 5", store.calls[0].limit)
	}
	if hasCondition(store.calls[0].expr, "delivery_method not_contains online") {
		t.Error("no location intent, online services must not be excluded")
	}
	if len(got) != 1 || got[0].ID != "x" {
		t.Errorf("got %v", ids(got))
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	store := &mockStore{}
	svc := New(store)

	if _, err := svc.Search(context.Background(), "depression", 0, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.calls[0].limit != 10 {
		t.Errorf("limit = %d, want default 10", store.calls[0].limit)
	}
}

func TestSearch_GlobalFallback(t *testing.T) {
	store := &mockStore{}
	svc := New(store)

	if _, err := svc.Search(context.Background(), "someone to talk to", 10, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasCondition(store.calls[0].expr, "organisation_name contains someone to talk to") {
		t.Errorf("expected raw-text fallback, got %v", store.calls[0].expr.Conditions())
	}
}

func TestSearch_PreferLocationExcludesOnline(t *testing.T) {
	store := &mockStore{}
	svc := New(store)

	// Suburb alone already implies location intent.
	if _, err := svc.Search(context.Background(), "carlton psychologist", 10, Options{PreferLocation: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.calls) != 2 {
		t.Fatalf("expected strict and broad calls, got %d", len(store.calls))
	}
	for i, c := range store.calls {
		if !hasCondition(c.expr, "delivery_method not_contains online") {
			t.Errorf("call %d missing online exclusion", i)
		}
	}
}

func TestSearch_StrictErrorIsSearchUnavailable(t *testing.T) {
	store := &mockStore{errs: []error{errors.New("connection refused")}}
	svc := New(store)

	got, err := svc.Search(context.Background(), "counselling in Carlton", 10, Options{})
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no partial results, got %v", ids(got))
	}
	if len(store.calls) != 1 {
		t.Errorf("broad stage must not run after a strict failure")
	}
}

func TestSearch_BroadErrorIsSearchUnavailable(t *testing.T) {
	store := &mockStore{
		responses: [][]service.Record{records("a")},
		errs:      []error{nil, errors.New("HTTP 500")},
	}
	svc := New(store)

	got, err := svc.Search(context.Background(), "counselling in Carlton", 10, Options{})
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no partial results, got %v", ids(got))
	}
}

func TestMerge(t *testing.T) {
	got := merge(records("a", "b"), records("b", "a", "c"), 10)
	if join(ids(got)) != "a,b,c" {
		t.Errorf("ids = %v", ids(got))
	}
}
