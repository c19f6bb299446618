package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/mail"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	codeLength   = 10
	codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Claims is the JWT payload for issued bearer tokens.
type Claims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Signup registers (or re-confirms) a (username, email) pair and emails
	// a fresh confirmation code.
	Signup(ctx context.Context, username, email string) (*models.User, error)
	// IssueToken exchanges a confirmation code for a bearer token. The code
	// is single-use: it is invalidated on the first successful exchange.
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	codes    repository.ConfirmationCodeStore
	mailer   mail.Mailer

	jwtSecret string
	tokenTTL  time.Duration
	codeTTL   time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes repository.ConfirmationCodeStore,
	mailer mail.Mailer,
	jwtSecret string,
	tokenTTL, codeTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		codes:     codes,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		codeTTL:   codeTTL,
	}
}

func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if username == models.ReservedUsername {
		return nil, ErrReservedUsername
	}
	if !models.ValidUsername(username) {
		return nil, ErrInvalidUsername
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		// Exact pair match means an idempotent re-request; anything else is
		// an attempt to claim a taken username.
		if user.Email != email {
			return nil, ErrSignupConflict
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
			return nil, ErrSignupConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &models.User{Username: username, Email: email, Role: models.RoleUser}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race against an identical signup slipping past the
				// pre-checks; same answer as the pre-checks give.
				return nil, ErrSignupConflict
			}
			return nil, err
		}
	default:
		return nil, err
	}

	code, err := generateCode(codeLength)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}
	if err := s.codes.Save(ctx, user.ID, string(hash), s.codeTTL); err != nil {
		return nil, fmt.Errorf("store confirmation code: %w", err)
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: "Your confirmation code",
		Body:    fmt.Sprintf("Your confirmation code: %s", code),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		// The user record stays: a retry of the same pair reissues a code.
		return nil, fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	hash, err := s.codes.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return "", ErrInvalidCode
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return "", ErrInvalidCode
	}

	if err := s.codes.Delete(ctx, user.ID); err != nil {
		return "", fmt.Errorf("invalidate confirmation code: %w", err)
	}

	return s.signToken(user)
}

func (s *authService) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func generateCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
