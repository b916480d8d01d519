package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/store"
)

// Op names a mutating operation in change notifications.
type Op string

const (
	OpRegister       Op = "register"
	OpLogin          Op = "login"
	OpLogout         Op = "logout"
	OpAddToCart      Op = "add_to_cart"
	OpIncrementLine  Op = "increment_line"
	OpDecrementLine  Op = "decrement_line"
	OpRemoveLine     Op = "remove_line"
	OpClearCart      Op = "clear_cart"
	OpToggleLike     Op = "toggle_like"
	OpFundWallet     Op = "fund_wallet"
	OpSetPin         Op = "set_pin"
	OpUpdateProfile  Op = "update_profile"
	OpRegisterVendor Op = "register_vendor"
	OpDeleteProduct  Op = "delete_product"
	OpCheckout       Op = "checkout"
)

// Event is delivered to subscribers after a committed mutation.
// Err is set only when the change could not be persisted.
type Event struct {
	Op  Op
	Err error
}

// errNoChange lets an operation finish successfully without a write.
var errNoChange = errors.New("no change")

// Option configures a Service in NewService.
type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock sets the time source for transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the generator for vendor and transaction ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// WithCredentials sets how passwords and PINs are hashed and verified.
func WithCredentials(c Credentials) Option {
	return func(s *Service) { s.creds = c }
}

// Service owns the single ApplicationState instance. Every mutation
// validates, applies, then persists the whole aggregate.
type Service struct {
	mu    sync.Mutex
	store store.Store
	state *model.State

	creds     Credentials
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
	lastStamp time.Time

	observers map[int]func(Event)
	nextObs   int
}

// NewService loads the aggregate from st, falling back to seed data
// for documents that are absent.
func NewService(ctx context.Context, st store.Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:     st,
		creds:     BcryptCredentials{},
		log:       zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
		observers: map[int]func(Event){},
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := loadState(ctx, st, s.log)
	if err != nil {
		return nil, err
	}
	s.state = state
	return s, nil
}

// State returns a deep copy of the aggregate.
func (s *Service) State() *model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn for change events. The returned func cancels it.
// fn runs after the service lock is released and may read state.
func (s *Service) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// mutate runs fn against the live aggregate. fn must return before
// touching state if any precondition fails.
func (s *Service) mutate(ctx context.Context, op Op, fn func(st *model.State) error) error {
	s.mu.Lock()
	if err := fn(s.state); err != nil {
		s.mu.Unlock()
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	err := s.persistLocked(ctx)
	observers := make([]func(Event), 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()

	for _, notify := range observers {
		notify(Event{Op: op, Err: err})
	}
	return err
}

func (s *Service) read(fn func(st *model.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// stamp returns a non-decreasing ISO-8601 timestamp.
func (s *Service) stamp() string {
	t := s.now().UTC()
	if t.Before(s.lastStamp) {
		t = s.lastStamp
	}
	s.lastStamp = t
	return t.Format(time.RFC3339Nano)
}

func requireUser(st *model.State) (model.User, error) {
	u, ok := st.CurrentUser()
	if !ok {
		return model.User{}, model.ErrNotLoggedIn
	}
	return u, nil
}
