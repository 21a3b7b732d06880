package services

import (
	"context"
	"strings"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
	"github.com/Kariqs/kopi-api/utils"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// Mailer sends the password reset code to a user.
type Mailer interface {
	SendOTP(email, name, code string) error
}

type AuthConfig struct {
	JWTSecret      string
	JWTTTL         time.Duration
	OTPTTL         time.Duration
	OTPMaxAttempts int
}

type AuthService struct {
	Store  *repository.Store
	OTP    OTPStore
	Mailer Mailer
	Config AuthConfig
}

func NewAuthService(store *repository.Store, otp OTPStore, mailer Mailer, cfg AuthConfig) *AuthService {
	if cfg.OTPMaxAttempts <= 0 {
		cfg.OTPMaxAttempts = 3
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 5 * time.Minute
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 7 * 24 * time.Hour
	}
	return &AuthService{Store: store, OTP: otp, Mailer: mailer, Config: cfg}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	return utils.GenerateToken(user.ID, user.Email, user.Role, s.Config.JWTSecret, s.Config.JWTTTL)
}

// Register creates a customer account with its profile and signs a token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleCustomer,
		Profile: &models.UserProfile{
			FullName: strings.TrimSpace(input.FullName),
			Phone:    strings.TrimSpace(input.Phone),
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
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(input models.LoginData) (*models.User, string, error) {
	user, err := s.Store.Users.FindByEmail(input.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidLogin
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ForgotPassword stores a fresh code for email and mails it. The code is
// returned so development builds can echo it.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.Store.Users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return "", err
	}
	if err := s.OTP.Save(ctx, user.Email, code, s.Config.OTPTTL); err != nil {
		return "", err
	}

	name := user.Email
	if user.Profile != nil && user.Profile.FullName != "" {
		name = user.Profile.FullName
	}
	if s.Mailer != nil {
		if err := s.Mailer.SendOTP(user.Email, name, code); err != nil {
			return "", err
		}
	}
	return code, nil
}

// ResetPassword consumes a valid code and replaces the password. The code
// is spent even if the password update fails.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	user, err := s.Store.Users.FindByEmail(input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.OTP.Verify(ctx, user.Email, input.OTP, s.Config.OTPMaxAttempts); err != nil {
		return err
	}

	hashed, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Store.Users.UpdatePassword(user.ID, hashed); err != nil {
		return err
	}
	return nil
}
