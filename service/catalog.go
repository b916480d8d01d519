package service

import (
	"context"
	"slices"
	"strings"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
)

// Products lists the catalog filtered by category. CategoryAll or ""
// returns everything.
func (s *Service) Products(category string) []model.Product {
	var out []model.Product
	s.read(func(st *model.State) {
		out = make([]model.Product, 0, len(st.Products))
		for _, p := range st.Products {
			if category == "" || category == model.CategoryAll || p.Category == category {
				out = append(out, p)
			}
		}
	})
	return out
}

func (s *Service) ProductsByVendor(vendorID string) []model.Product {
	var out []model.Product
	s.read(func(st *model.State) {
		out = make([]model.Product, 0)
		for _, p := range st.Products {
			if p.VendorID == vendorID {
				out = append(out, p)
			}
		}
	})
	return out
}

// Vendors lists the vendor profiles.
func (s *Service) Vendors() []model.Vendor {
	var out []model.Vendor
	s.read(func(st *model.State) { out = slices.Clone(st.Vendors) })
	return out
}

// RegisterVendor opens a shop for the current user. Customers become
// vendors; an existing vendor's shop profile is replaced.
func (s *Service) RegisterVendor(ctx context.Context, name, category string) (model.Vendor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Vendor{}, model.Errorf(model.CodeInvalidInput, "vendor name required")
	}
	category = model.NormalizeCategory(category)

	var out model.Vendor
	err := s.mutate(ctx, OpRegisterVendor, func(st *model.State) error {
		u, err := requireUser(st)
		if err != nil {
			return err
		}
		v := model.Vendor{
			DisplayName:  name,
			Category:     category,
			ContactEmail: u.Email,
		}
		if i := slices.IndexFunc(st.Vendors, func(x model.Vendor) bool { return x.ID == u.VendorID }); u.VendorID != "" && i >= 0 {
			v.ID = u.VendorID
			st.Vendors[i] = v
		} else {
			v.ID = s.newID()
			st.Vendors = append(st.Vendors, v)
		}
		u.Role = model.RoleVendor
		u.VendorID = v.ID
		st.Users[u.Email] = u
		out = v
		return nil
	})
	if !model.Committed(err) {
		return model.Vendor{}, err
	}
	return out, err
}

// DeleteProduct removes a product owned by the current vendor. Cart
// lines and likes that refer to it are left dangling.
func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	return s.mutate(ctx, OpDeleteProduct, func(st *model.State) error {
		u, err := requireUser(st)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(st.Products, func(p model.Product) bool { return p.ID == productID })
		if i < 0 {
			return model.Errorf(model.CodeUnknownProduct, "product %q not found", productID)
		}
		if u.Role != model.RoleVendor || u.VendorID == "" || st.Products[i].VendorID != u.VendorID {
			return model.ErrForbidden
		}
		st.Products = slices.Delete(st.Products, i, i+1)
		return nil
	})
}
