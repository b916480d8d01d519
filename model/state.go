package model

import "slices"

// State is the aggregate root. Only the service mutates it; everyone
// else works on a Clone.
type State struct {
	Users            map[string]User          `json:"users"`
	CurrentUserEmail string                   `json:"current,omitempty"`
	Products         []Product                `json:"products"`
	Vendors          []Vendor                 `json:"vendors"`
	Cart             []CartLine               `json:"cart"`
	Likes            []string                 `json:"likes"`
	Transactions     map[string][]Transaction `json:"transactions"`
}

// NewState returns the bootstrap aggregate: seed catalog, everything else empty.
func NewState() *State {
	return &State{
		Users:        map[string]User{},
		Products:     SeedProducts(),
		Vendors:      SeedVendors(),
		Cart:         []CartLine{},
		Likes:        []string{},
		Transactions: map[string][]Transaction{},
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	out := &State{
		Users:            make(map[string]User, len(s.Users)),
		CurrentUserEmail: s.CurrentUserEmail,
		Products:         slices.Clone(s.Products),
		Vendors:          slices.Clone(s.Vendors),
		Cart:             slices.Clone(s.Cart),
		Likes:            slices.Clone(s.Likes),
		Transactions:     make(map[string][]Transaction, len(s.Transactions)),
	}
	for k, u := range s.Users {
		out.Users[k] = u
	}
	for k, txs := range s.Transactions {
		cp := make([]Transaction, len(txs))
		for i, tx := range txs {
			tx.LineItems = slices.Clone(tx.LineItems)
			cp[i] = tx
		}
		out.Transactions[k] = cp
	}
	return out
}

// CurrentUser returns the logged-in user, if any.
func (s *State) CurrentUser() (User, bool) {
	if s.CurrentUserEmail == "" {
		return User{}, false
	}
	u, ok := s.Users[s.CurrentUserEmail]
	return u, ok
}

// FindProduct resolves a product by id.
func (s *State) FindProduct(id string) (Product, bool) {
	i := slices.IndexFunc(s.Products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, false
	}
	return s.Products[i], true
}

// CartIndex returns the index of the line for productID, or -1.
func (s *State) CartIndex(productID string) int {
	return slices.IndexFunc(s.Cart, func(l CartLine) bool { return l.ProductID == productID })
}

// CartTotal sums price*quantity over lines whose product still exists.
// Dangling lines contribute nothing.
func (s *State) CartTotal() Amount {
	var total Amount
	for _, line := range s.Cart {
		p, ok := s.FindProduct(line.ProductID)
		if !ok {
			continue
		}
		total += p.Price * Amount(line.Quantity)
	}
	return total
}

// CartCount is the number of items in the cart, dangling lines included.
func (s *State) CartCount() int {
	n := 0
	for _, line := range s.Cart {
		n += line.Quantity
	}
	return n
}

// Snapshot captures the cart as transaction line items. Dangling lines
// are left out, matching what CartTotal charges.
func (s *State) Snapshot() []LineItem {
	items := make([]LineItem, 0, len(s.Cart))
	for _, line := range s.Cart {
		if _, ok := s.FindProduct(line.ProductID); !ok {
			continue
		}
		items = append(items, LineItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return items
}
