package service

import (
	"context"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
)

var pinPattern = regexp.MustCompile(`^\d{4,6}$`)

// ProfileUpdate carries settings changes. Empty fields are left alone.
type ProfileUpdate struct {
	DisplayName string
	AvatarBlob  string
	Pin         string
}

// FundWallet credits the current user's wallet and records a fund entry.
func (s *Service) FundWallet(ctx context.Context, amount model.Amount) (model.Transaction, error) {
	if amount <= 0 {
		return model.Transaction{}, model.ErrInvalidAmount
	}
	var tx model.Transaction
	err := s.mutate(ctx, OpFundWallet, func(st *model.State) error {
		u, err := requireUser(st)
		if err != nil {
			return err
		}
		if amount > math.MaxInt64-u.WalletBalance {
			return model.Errorf(model.CodeInvalidAmount, "balance would exceed %v", model.Amount(math.MaxInt64))
		}
		u.WalletBalance += amount
		st.Users[u.Email] = u
		tx = s.recordTransaction(st, u.Email, model.TxFund, amount, nil)
		return nil
	})
	if !model.Committed(err) {
		return model.Transaction{}, err
	}
	return tx, err
}

// SetPin stores a hash of a 4 to 6 digit PIN for the current user.
func (s *Service) SetPin(ctx context.Context, pin string) error {
	if !pinPattern.MatchString(pin) {
		return model.ErrInvalidPin
	}
	return s.mutate(ctx, OpSetPin, func(st *model.State) error {
		u, err := requireUser(st)
		if err != nil {
			return err
		}
		hash, err := s.creds.Hash(pin)
		if err != nil {
			return model.Wrap(model.CodeInvalidPin, "hash pin", err)
		}
		u.PinHash = hash
		st.Users[u.Email] = u
		return nil
	})
}

// UpdateProfile applies p to the current user. Every field is
// validated before anything changes.
func (s *Service) UpdateProfile(ctx context.Context, p ProfileUpdate) (model.User, error) {
	name := strings.TrimSpace(p.DisplayName)
	if p.Pin != "" && !pinPattern.MatchString(p.Pin) {
		return model.User{}, model.ErrInvalidPin
	}

	var out model.User
	err := s.mutate(ctx, OpUpdateProfile, func(st *model.State) error {
		u, err := requireUser(st)
		if err != nil {
			return err
		}
		if p.Pin != "" {
			hash, err := s.creds.Hash(p.Pin)
			if err != nil {
				return model.Wrap(model.CodeInvalidPin, "hash pin", err)
			}
			u.PinHash = hash
		}
		if name != "" {
			u.DisplayName = name
		}
		if p.AvatarBlob != "" {
			u.Avatar = p.AvatarBlob
		}
		st.Users[u.Email] = u
		out = u
		return nil
	})
	if !model.Committed(err) {
		return model.User{}, err
	}
	return out, err
}

// ListTransactions returns a copy of the ledger for email, oldest first.
func (s *Service) ListTransactions(email string) []model.Transaction {
	email = normalizeEmail(email)
	var out []model.Transaction
	s.read(func(st *model.State) {
		txs := st.Transactions[email]
		out = make([]model.Transaction, len(txs))
		for i, tx := range txs {
			tx.LineItems = slices.Clone(tx.LineItems)
			out[i] = tx
		}
	})
	return out
}

// recordTransaction appends to owner's ledger. Caller holds s.mu.
func (s *Service) recordTransaction(st *model.State, owner string, kind model.TxKind, amount model.Amount, items []model.LineItem) model.Transaction {
	tx := model.Transaction{
		ID:         s.newID(),
		OwnerEmail: owner,
		Kind:       kind,
		Amount:     amount,
		Timestamp:  s.stamp(),
		LineItems:  items,
	}
	st.Transactions[owner] = append(st.Transactions[owner], tx)
	return tx
}
