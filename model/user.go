package model

// Role distinguishes shoppers from sellers.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleVendor
}

// User is keyed by email. Secrets are stored as hashes.
type User struct {
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PasswordHash  string `json:"passwordHash"`
	Role          Role   `json:"role"`
	WalletBalance Amount `json:"walletBalance"`
	PinHash       string `json:"pinHash,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	VendorID      string `json:"vendorId,omitempty"`
}

// HasPin reports whether a wallet PIN has been set.
func (u User) HasPin() bool {
	return u.PinHash != ""
}

// Vendor is a seller profile. Products refer back to it by id.
type Vendor struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Category     string `json:"category"`
	ContactEmail string `json:"contactEmail"`
}
