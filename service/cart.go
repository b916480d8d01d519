package service

import (
	"context"
	"slices"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
)

// CartDTO is a cart line resolved against the catalog.
type CartDTO struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	ImageRef  string       `json:"image_ref"`
	Quantity  int          `json:"quantity"`
	Price     model.Amount `json:"price"`
	LineTotal model.Amount `json:"line_total"`
}

// AddToCart adds one unit of productID. Unknown products are rejected.
func (s *Service) AddToCart(ctx context.Context, productID string) error {
	return s.mutate(ctx, OpAddToCart, func(st *model.State) error {
		if _, ok := st.FindProduct(productID); !ok {
			return model.Errorf(model.CodeUnknownProduct, "product %q not found", productID)
		}
		if i := st.CartIndex(productID); i >= 0 {
			st.Cart[i].Quantity++
			return nil
		}
		st.Cart = append(st.Cart, model.CartLine{ProductID: productID, Quantity: 1})
		return nil
	})
}

// IncrementLine adds one unit to an existing line.
func (s *Service) IncrementLine(ctx context.Context, productID string) error {
	return s.mutate(ctx, OpIncrementLine, func(st *model.State) error {
		i := st.CartIndex(productID)
		if i < 0 {
			return model.Errorf(model.CodeNotFound, "no cart line for %q", productID)
		}
		st.Cart[i].Quantity++
		return nil
	})
}

// DecrementLine removes one unit; a line at quantity 1 is dropped.
// An absent line is a no-op.
func (s *Service) DecrementLine(ctx context.Context, productID string) error {
	return s.mutate(ctx, OpDecrementLine, func(st *model.State) error {
		i := st.CartIndex(productID)
		if i < 0 {
			return errNoChange
		}
		if st.Cart[i].Quantity > 1 {
			st.Cart[i].Quantity--
			return nil
		}
		st.Cart = slices.Delete(st.Cart, i, i+1)
		return nil
	})
}

// RemoveLine drops the line for productID, if present.
func (s *Service) RemoveLine(ctx context.Context, productID string) error {
	return s.mutate(ctx, OpRemoveLine, func(st *model.State) error {
		i := st.CartIndex(productID)
		if i < 0 {
			return errNoChange
		}
		st.Cart = slices.Delete(st.Cart, i, i+1)
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, OpClearCart, func(st *model.State) error {
		if len(st.Cart) == 0 {
			return errNoChange
		}
		st.Cart = []model.CartLine{}
		return nil
	})
}

// ComputeTotal sums the live cart, skipping lines whose product is gone.
func (s *Service) ComputeTotal() model.Amount {
	var total model.Amount
	s.read(func(st *model.State) { total = st.CartTotal() })
	return total
}

// CartCount is the badge count: the sum of quantities.
func (s *Service) CartCount() int {
	var n int
	s.read(func(st *model.State) { n = st.CartCount() })
	return n
}

// CartView resolves the cart for display. Dangling lines are left out.
func (s *Service) CartView() ([]CartDTO, model.Amount) {
	var (
		out   []CartDTO
		total model.Amount
	)
	s.read(func(st *model.State) {
		out = make([]CartDTO, 0, len(st.Cart))
		for _, line := range st.Cart {
			p, ok := st.FindProduct(line.ProductID)
			if !ok {
				continue
			}
			lineTotal := p.Price * model.Amount(line.Quantity)
			out = append(out, CartDTO{
				ProductID: p.ID,
				Name:      p.DisplayName,
				ImageRef:  p.ImageRef,
				Quantity:  line.Quantity,
				Price:     p.Price,
				LineTotal: lineTotal,
			})
			total += lineTotal
		}
	})
	return out, total
}

// ToggleLike flips membership of productID in the like set and
// reports whether it is now liked.
func (s *Service) ToggleLike(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, model.ErrInvalidInput
	}
	var liked bool
	err := s.mutate(ctx, OpToggleLike, func(st *model.State) error {
		if i := slices.Index(st.Likes, productID); i >= 0 {
			st.Likes = slices.Delete(st.Likes, i, i+1)
			liked = false
			return nil
		}
		st.Likes = append(st.Likes, productID)
		liked = true
		return nil
	})
	return liked, err
}

// LikedProducts resolves the like set, skipping products that no longer exist.
func (s *Service) LikedProducts() []model.Product {
	var out []model.Product
	s.read(func(st *model.State) {
		out = make([]model.Product, 0, len(st.Likes))
		for _, id := range st.Likes {
			if p, ok := st.FindProduct(id); ok {
				out = append(out, p)
			}
		}
	})
	return out
}
