package model

// TxKind is the ledger entry type.
type TxKind string

const (
	TxPurchase TxKind = "purchase"
	TxFund     TxKind = "fund"
	TxCard     TxKind = "card"
	TxBank     TxKind = "bank"
)

// CartLine is one product in the cart. Quantity is always >= 1.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// LineItem is a cart line captured on a transaction at commit time.
type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Transaction is an append-only ledger entry.
type Transaction struct {
	ID         string     `json:"id"`
	OwnerEmail string     `json:"ownerEmail"`
	Kind       TxKind     `json:"kind"`
	Amount     Amount     `json:"amount"`
	Timestamp  string     `json:"timestamp"`
	LineItems  []LineItem `json:"lineItems,omitempty"`
}
