package services

import (
	"context"
	"strings"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
)

type UserInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
	FullName string `json:"fullName" form:"fullName"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	PhotoURL string `json:"-" form:"-"`
}

type UserService struct {
	Store *repository.Store
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{Store: store}
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleCustomer
}

func (s *UserService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	if input.Role == "" {
		input.Role = models.RoleCustomer
	}
	if !validRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(input.Email) == "" || len(input.Password) < 8 {
		return nil, ErrInvalidUserInput
	}
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
		Profile: &models.UserProfile{
			FullName: strings.TrimSpace(input.FullName),
			Phone:    strings.TrimSpace(input.Phone),
			Address:  strings.TrimSpace(input.Address),
			PhotoURL: input.PhotoURL,
		},
	}
	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		taken, err := tx.Users.EmailTaken(input.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		return tx.Users.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the non-empty fields of input to the user and profile.
func (s *UserService) Update(ctx context.Context, userID uint, input UserInput) (*models.User, error) {
	if input.Role != "" && !validRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if input.Password != "" && len(input.Password) < 8 {
		return nil, ErrInvalidUserInput
	}

	var updated *models.User
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		userFields := map[string]any{}
		if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" && email != user.Email {
			taken, err := tx.Users.EmailTaken(email, userID)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
			userFields["email"] = email
		}
		if input.Role != "" {
			userFields["role"] = input.Role
		}
		if input.Password != "" {
			hashed, err := HashPassword(input.Password)
			if err != nil {
				return err
			}
			userFields["password"] = hashed
		}
		if err := tx.Users.UpdateUser(userID, userFields); err != nil {
			return err
		}

		profileFields := map[string]any{}
		if v := strings.TrimSpace(input.FullName); v != "" {
			profileFields["full_name"] = v
		}
		if v := strings.TrimSpace(input.Phone); v != "" {
			profileFields["phone"] = v
		}
		if v := strings.TrimSpace(input.Address); v != "" {
			profileFields["address"] = v
		}
		if input.PhotoURL != "" {
			profileFields["photo_url"] = input.PhotoURL
		}
		if err := tx.Users.UpsertProfile(userID, profileFields); err != nil {
			return err
		}

		updated, err = tx.Users.FindByID(userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete refuses users that own orders, since orders are kept for history.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	return s.Store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		orders, err := tx.Orders.CountOrdersByUser(userID)
		if err != nil {
			return err
		}
		if orders > 0 {
			return ErrUserHasOrders
		}
		return tx.Users.Delete(userID)
	})
}
