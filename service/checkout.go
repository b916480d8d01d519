package service

import (
	"context"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
)

// CheckoutState is a step of the checkout machine.
type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutAwaitingPaymentMethod
	CheckoutWalletPinCheck
	CheckoutDirectSettle
	CheckoutCommitted
	CheckoutAborted
)

func (c CheckoutState) String() string {
	switch c {
	case CheckoutIdle:
		return "Idle"
	case CheckoutAwaitingPaymentMethod:
		return "AwaitingPaymentMethod"
	case CheckoutWalletPinCheck:
		return "WalletPinCheck"
	case CheckoutDirectSettle:
		return "DirectSettle"
	case CheckoutCommitted:
		return "Committed"
	case CheckoutAborted:
		return "Aborted"
	}
	return "Unknown"
}

// Terminal reports whether no further transitions are possible.
func (c CheckoutState) Terminal() bool {
	return c == CheckoutCommitted || c == CheckoutAborted
}

// PaymentMethod is the rail a checkout settles on.
type PaymentMethod string

const (
	PayWallet PaymentMethod = "wallet"
	PayCard   PaymentMethod = "card"
	PayBank   PaymentMethod = "bank"
)

func (m PaymentMethod) Valid() bool {
	return m == PayWallet || m == PayCard || m == PayBank
}

// Checkout walks one cart through payment. It is not safe for use by
// several goroutines; the Service it wraps is.
type Checkout struct {
	svc     *Service
	state   CheckoutState
	method  PaymentMethod
	reason  model.Code
	receipt model.Transaction
}

// BeginCheckout opens a checkout over the current cart.
func (s *Service) BeginCheckout() (*Checkout, error) {
	var empty bool
	s.read(func(st *model.State) { empty = len(st.Cart) == 0 })
	if empty {
		return nil, model.ErrEmptyCart
	}
	return &Checkout{svc: s, state: CheckoutAwaitingPaymentMethod}, nil
}

func (c *Checkout) State() CheckoutState { return c.state }

func (c *Checkout) Method() PaymentMethod { return c.method }

// Reason is the error code of an aborted checkout, empty otherwise.
func (c *Checkout) Reason() model.Code { return c.reason }

// Receipt is the transaction written by a committed checkout.
func (c *Checkout) Receipt() model.Transaction { return c.receipt }

// SelectMethod picks the payment rail. It may be called again to change
// the choice until Confirm runs.
func (c *Checkout) SelectMethod(m PaymentMethod) error {
	if c.state.Terminal() {
		return model.ErrCheckoutClosed
	}
	if !m.Valid() {
		return model.Errorf(model.CodeInvalidInput, "unknown payment method %q", m)
	}
	c.method = m
	if m == PayWallet {
		c.state = CheckoutWalletPinCheck
	} else {
		c.state = CheckoutDirectSettle
	}
	return nil
}

// Confirm settles the cart. The total is recomputed from the live cart.
// On any rejection the checkout is Aborted and the aggregate is untouched.
// pin is only consulted for wallet payments.
func (c *Checkout) Confirm(ctx context.Context, pin string) (model.Transaction, error) {
	switch c.state {
	case CheckoutCommitted, CheckoutAborted:
		return model.Transaction{}, model.ErrCheckoutClosed
	case CheckoutWalletPinCheck, CheckoutDirectSettle:
	default:
		return model.Transaction{}, model.Errorf(model.CodeInvalidInput, "payment method not selected")
	}

	s := c.svc
	var tx model.Transaction
	err := s.mutate(ctx, OpCheckout, func(st *model.State) error {
		u, err := requireUser(st)
		if err != nil {
			return err
		}
		if len(st.Cart) == 0 {
			return model.ErrEmptyCart
		}
		total := st.CartTotal()

		kind := model.TxKind(c.method)
		if c.method == PayWallet {
			if !u.HasPin() {
				return model.ErrPinNotSet
			}
			if pin == "" || !s.creds.Verify(u.PinHash, pin) {
				return model.ErrInvalidPinEntered
			}
			if u.WalletBalance < total {
				return model.ErrInsufficientFunds
			}
			u.WalletBalance -= total
			st.Users[u.Email] = u
			kind = model.TxPurchase
		}

		tx = s.recordTransaction(st, u.Email, kind, total, st.Snapshot())
		st.Cart = []model.CartLine{}
		return nil
	})
	if !model.Committed(err) {
		c.state = CheckoutAborted
		c.reason = model.CodeOf(err)
		return model.Transaction{}, err
	}
	c.state = CheckoutCommitted
	c.receipt = tx
	return tx, err
}

// Checkout runs a whole checkout in one call.
func (s *Service) Checkout(ctx context.Context, method PaymentMethod, pin string) (model.Transaction, error) {
	co, err := s.BeginCheckout()
	if err != nil {
		return model.Transaction{}, err
	}
	if err := co.SelectMethod(method); err != nil {
		return model.Transaction{}, err
	}
	return co.Confirm(ctx, pin)
}
