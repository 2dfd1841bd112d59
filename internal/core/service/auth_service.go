package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// AuthService implements registration, login and token refresh. Access and
// refresh tokens are HS256 JWTs signed with separate secrets.
type AuthService struct {
	users         ports.UserRepository
	secret        []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	bcryptCost    int
	logger        zerolog.Logger
}

type AuthOptions struct {
	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	BcryptCost       int
}

func NewAuthService(users ports.UserRepository, opts AuthOptions, logger zerolog.Logger) *AuthService {
	if opts.AccessTokenTTL <= 0 {
		opts.AccessTokenTTL = 24 * time.Hour
	}
	if opts.RefreshTokenTTL <= 0 {
		opts.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:         users,
		secret:        []byte(opts.JWTSecret),
		refreshSecret: []byte(opts.JWTRefreshSecret),
		accessTTL:     opts.AccessTokenTTL,
		refreshTTL:    opts.RefreshTokenTTL,
		bcryptCost:    opts.BcryptCost,
		logger:        logger,
	}
}

// Register opens a customer account. Registration never creates admins.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, ports.TokenPair, error) {
	if err := ValidatePassword(in.Password); err != nil {
		return nil, ports.TokenPair{}, err
	}
	if err := validatePhone(in.Phone); err != nil {
		return nil, ports.TokenPair{}, err
	}

	if _, err := s.users.ByEmail(ctx, in.Email); err == nil {
		return nil, ports.TokenPair{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, ports.TokenPair{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	user := &domain.User{
		CompanyName:  in.CompanyName,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		Status:       domain.UserActive,
		Profile: domain.Profile{
			Address:      in.Address,
			City:         in.City,
			State:        in.State,
			ZipCode:      in.ZipCode,
			Country:      in.Country,
			BusinessType: in.BusinessType,
		},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, ports.TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("customer_number", user.CustomerNumber).
		Str("company", user.CompanyName).
		Msg("account registered")
	return user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ports.TokenPair{}, domain.ErrInvalidCredentials
		}
		return nil, ports.TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ports.TokenPair{}, domain.ErrInvalidCredentials
	}
	if user.Status != domain.UserActive {
		return nil, ports.TokenPair{}, domain.ErrAccountInactive
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login")
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented refresh token stays valid for its original lifetime.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (ports.TokenPair, error) {
	claims, err := parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return ports.TokenPair{}, domain.ErrInvalidCredentials
	}

	userID, _ := claims["sub"].(string)
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return ports.TokenPair{}, domain.ErrInvalidCredentials
	}
	if user.Status != domain.UserActive {
		return ports.TokenPair{}, domain.ErrAccountInactive
	}

	access, err := s.signToken(user, s.secret, s.accessTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Verify resolves the authenticated user behind an already-validated token.
func (s *AuthService) Verify(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != domain.UserActive {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

func (s *AuthService) issuePair(user *domain.User) (ports.TokenPair, error) {
	access, err := s.signToken(user, s.secret, s.accessTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := s.signToken(user, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(user *domain.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"company": user.CompanyName,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func parseToken(token string, secret []byte) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidCredentials
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return claims, nil
}

// ValidatePassword enforces the account password policy: at least 8
// characters with an upper-case letter, a lower-case letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.ErrValidation
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return domain.ErrValidation
	}
	return nil
}

func validatePhone(phone string) error {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 10 {
		return domain.ErrValidation
	}
	return nil
}
