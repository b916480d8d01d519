package service

import (
	"context"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
)

type ServiceInterface interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (model.User, bool)

	Products(category string) []model.Product
	ProductsByVendor(vendorID string) []model.Product
	Vendors() []model.Vendor
	RegisterVendor(ctx context.Context, name, category string) (model.Vendor, error)
	DeleteProduct(ctx context.Context, productID string) error

	AddToCart(ctx context.Context, productID string) error
	IncrementLine(ctx context.Context, productID string) error
	DecrementLine(ctx context.Context, productID string) error
	RemoveLine(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
	CartView() ([]CartDTO, model.Amount)
	CartCount() int
	ToggleLike(ctx context.Context, productID string) (bool, error)
	LikedProducts() []model.Product

	FundWallet(ctx context.Context, amount model.Amount) (model.Transaction, error)
	SetPin(ctx context.Context, pin string) error
	UpdateProfile(ctx context.Context, p ProfileUpdate) (model.User, error)
	ListTransactions(email string) []model.Transaction

	Checkout(ctx context.Context, method PaymentMethod, pin string) (model.Transaction, error)
}

var _ ServiceInterface = (*Service)(nil)
