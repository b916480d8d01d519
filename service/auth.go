package service

import (
	"context"
	"strings"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
)

// Register creates a user and logs them in. Vendors also get a shop.
func (s *Service) Register(ctx context.Context, name, email, password string, role model.Role) (model.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return model.User{}, model.ErrInvalidInput
	}
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return model.User{}, model.Errorf(model.CodeInvalidInput, "unknown role %q", role)
	}

	var out model.User
	err := s.mutate(ctx, OpRegister, func(st *model.State) error {
		if _, exists := st.Users[email]; exists {
			return model.ErrDuplicateUser
		}
		hash, err := s.creds.Hash(password)
		if err != nil {
			return model.Wrap(model.CodeInvalidInput, "hash password", err)
		}

		u := model.User{
			Email:        email,
			DisplayName:  name,
			PasswordHash: hash,
			Role:         role,
		}
		if role == model.RoleVendor {
			v := model.Vendor{
				ID:           s.newID(),
				DisplayName:  name + "'s Shop",
				Category:     model.CategoryOther,
				ContactEmail: email,
			}
			st.Vendors = append(st.Vendors, v)
			u.VendorID = v.ID
		}
		st.Users[email] = u
		st.CurrentUserEmail = email
		out = u
		return nil
	})
	if !model.Committed(err) {
		return model.User{}, err
	}
	return out, err
}

// Login sets the current user when the password matches.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, model.ErrInvalidInput
	}

	var out model.User
	err := s.mutate(ctx, OpLogin, func(st *model.State) error {
		u, ok := st.Users[email]
		if !ok {
			return model.Errorf(model.CodeNotFound, "no user %q", email)
		}
		if !s.creds.Verify(u.PasswordHash, password) {
			return model.ErrInvalidCredentials
		}
		st.CurrentUserEmail = email
		out = u
		return nil
	})
	if !model.Committed(err) {
		return model.User{}, err
	}
	return out, err
}

// Logout clears the current user. Only a persistence failure is reported.
func (s *Service) Logout(ctx context.Context) error {
	return s.mutate(ctx, OpLogout, func(st *model.State) error {
		st.CurrentUserEmail = ""
		return nil
	})
}

// CurrentUser returns the logged-in user, if any.
func (s *Service) CurrentUser() (model.User, bool) {
	var (
		u  model.User
		ok bool
	)
	s.read(func(st *model.State) { u, ok = st.CurrentUser() })
	return u, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
