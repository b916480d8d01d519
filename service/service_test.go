package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/store"
)

// ---- fakeStore implementing store.Store for tests ----
type fakeStore struct {
	LoadFn   func(key string) (json.RawMessage, bool, error)
	SaveFn   func(key string, value json.RawMessage) error
	RemoveFn func(key string) error
}

func (f *fakeStore) Load(_ context.Context, key string) (json.RawMessage, bool, error) {
	if f.LoadFn == nil {
		return nil, false, nil
	}
	return f.LoadFn(key)
}
func (f *fakeStore) Save(_ context.Context, key string, value json.RawMessage) error {
	if f.SaveFn == nil {
		return nil
	}
	return f.SaveFn(key, value)
}
func (f *fakeStore) Remove(_ context.Context, key string) error {
	if f.RemoveFn == nil {
		return nil
	}
	return f.RemoveFn(key)
}
func (f *fakeStore) Close() error { return nil }

// ---- helpers ----

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, st store.Store, opts ...Option) *Service {
	t.Helper()
	n := 0
	base := []Option{
		WithClock(func() time.Time { return testEpoch }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		WithCredentials(BcryptCredentials{Cost: bcrypt.MinCost}),
	}
	svc, err := NewService(context.Background(), st, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

// seedDoc writes a document into st before a service loads it.
func seedDoc(t *testing.T, st store.Store, key string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", key, err)
	}
	if err := st.Save(context.Background(), key, raw); err != nil {
		t.Fatalf("save %s: %v", key, err)
	}
}

// loggedIn registers and logs in a customer.
func loggedIn(t *testing.T, svc *Service) model.User {
	t.Helper()
	u, err := svc.Register(context.Background(), "Ada", "ada@example.com", "secret", model.RoleCustomer)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

// ---- Tests ----

func TestNewServiceBootstrapsSeedData(t *testing.T) {
	svc := newTestService(t, store.NewMemoryStore())
	st := svc.State()

	if len(st.Products) != 6 {
		t.Fatalf("expected 6 seed products, got %d", len(st.Products))
	}
	if len(st.Vendors) != 3 {
		t.Fatalf("expected 3 seed vendors, got %d", len(st.Vendors))
	}
	if len(st.Cart) != 0 || len(st.Likes) != 0 || len(st.Users) != 0 {
		t.Fatalf("expected empty cart, likes and users, got %+v", st)
	}
	if st.CurrentUserEmail != "" {
		t.Fatalf("expected logged out, got %q", st.CurrentUserEmail)
	}
}

func TestStateRoundTripsThroughStore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	svc := newTestService(t, mem)

	loggedIn(t, svc)
	if err := svc.SetPin(ctx, "1234"); err != nil {
		t.Fatalf("set pin: %v", err)
	}
	if _, err := svc.FundWallet(ctx, model.Naira(10000)); err != nil {
		t.Fatalf("fund: %v", err)
	}
	for _, pid := range []string{"p1", "p1", "p2"} {
		if err := svc.AddToCart(ctx, pid); err != nil {
			t.Fatalf("add %s: %v", pid, err)
		}
	}
	if _, err := svc.ToggleLike(ctx, "p3"); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := svc.Checkout(ctx, PayWallet, "1234"); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if err := svc.AddToCart(ctx, "p5"); err != nil {
		t.Fatalf("add p5: %v", err)
	}

	reloaded := newTestService(t, mem)
	if !reflect.DeepEqual(svc.State(), reloaded.State()) {
		t.Fatalf("reloaded state differs:\n got  %+v\n want %+v", reloaded.State(), svc.State())
	}
}

func TestLogoutRemovesCurrentDocument(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	svc := newTestService(t, mem)
	loggedIn(t, svc)

	if _, ok, _ := mem.Load(ctx, KeyCurrent); !ok {
		t.Fatalf("expected current document after register")
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := mem.Load(ctx, KeyCurrent); ok {
		t.Fatalf("expected current document removed after logout")
	}
	if _, ok := newTestService(t, mem).CurrentUser(); ok {
		t.Fatalf("expected reloaded service to be logged out")
	}
}

func TestLoadClearsDanglingCurrentUser(t *testing.T) {
	mem := store.NewMemoryStore()
	seedDoc(t, mem, KeyCurrent, "ghost@example.com")

	svc := newTestService(t, mem)
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("expected no current user")
	}
	if got := svc.State().CurrentUserEmail; got != "" {
		t.Fatalf("expected current cleared, got %q", got)
	}
}

func TestLoadNullDocumentsFallBackToDefaults(t *testing.T) {
	mem := store.NewMemoryStore()
	for _, key := range []string{KeyUsers, KeyProducts, KeyVendors, KeyCart, KeyLikes, KeyTransactions} {
		if err := mem.Save(context.Background(), key, json.RawMessage("null")); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	st := newTestService(t, mem).State()
	if len(st.Products) != 6 || len(st.Vendors) != 3 {
		t.Fatalf("expected seed catalog, got %d products %d vendors", len(st.Products), len(st.Vendors))
	}
	if st.Users == nil || st.Cart == nil || st.Likes == nil || st.Transactions == nil {
		t.Fatalf("expected non-nil collections, got %+v", st)
	}
}

func TestLoadErrorsArePersistenceFailures(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := NewService(context.Background(), &fakeStore{
		LoadFn: func(key string) (json.RawMessage, bool, error) { return nil, false, boom },
	})
	if !errors.Is(err, model.ErrPersistenceFailure) {
		t.Fatalf("expected persistence failure, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected cause to be kept, got %v", err)
	}

	_, err = NewService(context.Background(), &fakeStore{
		LoadFn: func(key string) (json.RawMessage, bool, error) {
			return json.RawMessage("{not json"), true, nil
		},
	})
	if !errors.Is(err, model.ErrPersistenceFailure) {
		t.Fatalf("expected persistence failure for bad json, got %v", err)
	}
}

func TestPersistenceFailureKeepsInMemoryState(t *testing.T) {
	saves := 0
	fs := &fakeStore{
		SaveFn: func(key string, value json.RawMessage) error {
			saves++
			return errors.New("read-only")
		},
	}
	core, logs := observer.New(zap.ErrorLevel)
	svc := newTestService(t, fs, WithLogger(zap.New(core)))

	var events []Event
	svc.Subscribe(func(e Event) { events = append(events, e) })

	err := svc.AddToCart(context.Background(), "p1")
	if !errors.Is(err, model.ErrPersistenceFailure) {
		t.Fatalf("expected persistence failure, got %v", err)
	}
	if !model.Committed(err) {
		t.Fatalf("expected persistence failure to count as committed")
	}
	if saves == 0 {
		t.Fatalf("expected a save attempt")
	}
	cart := svc.State().Cart
	if len(cart) != 1 || cart[0].ProductID != "p1" {
		t.Fatalf("expected in-memory cart to keep p1, got %+v", cart)
	}
	if len(events) != 1 || events[0].Op != OpAddToCart || events[0].Err == nil {
		t.Fatalf("expected one add_to_cart event carrying the error, got %+v", events)
	}
	if n := logs.FilterMessage("persist state").Len(); n != 1 {
		t.Fatalf("expected one persist error log, got %d", n)
	}
}

func TestSubscribeSkipsRejectedOperations(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryStore())

	var ops []Op
	cancel := svc.Subscribe(func(e Event) {
		// observers may read state without deadlocking
		_ = svc.CartCount()
		ops = append(ops, e.Op)
	})

	if err := svc.AddToCart(ctx, "nope"); err == nil {
		t.Fatalf("expected unknown product error")
	}
	if err := svc.AddToCart(ctx, "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.RemoveLine(ctx, "p9"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	cancel()
	if err := svc.ClearCart(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if !reflect.DeepEqual(ops, []Op{OpAddToCart}) {
		t.Fatalf("expected only add_to_cart, got %v", ops)
	}
}

func TestStateReturnsCopy(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryStore())
	if err := svc.AddToCart(ctx, "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	snap := svc.State()
	snap.Cart[0].Quantity = 99
	snap.Products = nil

	st := svc.State()
	if st.Cart[0].Quantity != 1 {
		t.Fatalf("expected live cart untouched, got %d", st.Cart[0].Quantity)
	}
	if len(st.Products) != 6 {
		t.Fatalf("expected live products untouched")
	}
}
