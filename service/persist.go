package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/store"
)

// Document keys, one per aggregate field.
const (
	KeyUsers        = "users"
	KeyCurrent      = "current"
	KeyProducts     = "products"
	KeyVendors      = "vendors"
	KeyCart         = "cart"
	KeyLikes        = "likes"
	KeyTransactions = "transactions"
)

func documents(st *model.State) map[string]any {
	return map[string]any{
		KeyUsers:        &st.Users,
		KeyCurrent:      &st.CurrentUserEmail,
		KeyProducts:     &st.Products,
		KeyVendors:      &st.Vendors,
		KeyCart:         &st.Cart,
		KeyLikes:        &st.Likes,
		KeyTransactions: &st.Transactions,
	}
}

// loadState builds the aggregate from st. Absent documents keep the
// bootstrap value, so loading twice without writes yields the same state.
func loadState(ctx context.Context, st store.Store, log *zap.Logger) (*model.State, error) {
	state := model.NewState()
	for key, dst := range documents(state) {
		raw, ok, err := st.Load(ctx, key)
		if err != nil {
			return nil, model.Wrap(model.CodePersistenceFailure, "load "+key, err)
		}
		if !ok {
			log.Debug("document absent, using default", zap.String("key", key))
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, model.Wrap(model.CodePersistenceFailure, "decode "+key, err)
		}
	}

	// A stored null behaves like an absent document.
	if state.Users == nil {
		state.Users = map[string]model.User{}
	}
	if state.Products == nil {
		state.Products = model.SeedProducts()
	}
	if state.Vendors == nil {
		state.Vendors = model.SeedVendors()
	}
	if state.Cart == nil {
		state.Cart = []model.CartLine{}
	}
	if state.Likes == nil {
		state.Likes = []string{}
	}
	if state.Transactions == nil {
		state.Transactions = map[string][]model.Transaction{}
	}

	if state.CurrentUserEmail != "" {
		if _, ok := state.Users[state.CurrentUserEmail]; !ok {
			log.Warn("current user missing from users, logging out", zap.String("email", state.CurrentUserEmail))
			state.CurrentUserEmail = ""
		}
	}
	return state, nil
}

// encodeState renders the full aggregate as one batch. A logged-out
// session removes the current document instead of storing "".
func encodeState(state *model.State) (store.Batch, error) {
	b := store.Batch{Puts: map[string]json.RawMessage{}}
	for key, src := range documents(state) {
		if key == KeyCurrent && state.CurrentUserEmail == "" {
			b.Removes = append(b.Removes, KeyCurrent)
			continue
		}
		raw, err := json.Marshal(src)
		if err != nil {
			return store.Batch{}, fmt.Errorf("encode %s: %w", key, err)
		}
		b.Puts[key] = raw
	}
	return b, nil
}

// persistLocked writes the aggregate. Failures are logged and reported
// but the in-memory state stays as the source of truth.
func (s *Service) persistLocked(ctx context.Context) error {
	b, err := encodeState(s.state)
	if err == nil {
		err = store.Write(ctx, s.store, b)
	}
	if err != nil {
		s.log.Error("persist state", zap.Error(err))
		return model.Wrap(model.CodePersistenceFailure, "persist state", err)
	}
	return nil
}
