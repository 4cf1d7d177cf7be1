// Package auth registers accounts, checks passwords and issues the signed
// session tokens that gate the statistics API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pable/go-ipl-stats/internal/storage"
)

var (
	// ErrIncompleteForm is returned when a required field is empty.
	ErrIncompleteForm = errors.New("incomplete form")
	// ErrInvalidEmail is returned when an email does not look like one.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for a token that fails verification or has expired.
	ErrInvalidToken = errors.New("invalid session token")
)

var emailPattern = regexp.MustCompile(`^\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,7}\b$`)

// ValidEmail reports whether email matches the accepted address pattern in full.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// UserStore is the subset of storage the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*storage.User, error)
	GetUserByEmail(ctx context.Context, email string) (*storage.User, error)
	TouchLogin(ctx context.Context, id int64) error
}

// Claims are carried in every session token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the numeric account ID stored in the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

const issuer = "iplstats"

// Service handles registration, login and token verification.
type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService returns a service signing tokens with secret that expire after ttl.
func NewService(users UserStore, secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return &Service{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Register creates an account. Name, email and password must all be set and
// the email must be well formed; a taken email yields storage.ErrUserExists.
func (s *Service) Register(ctx context.Context, name, email, password string) (*storage.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrIncompleteForm
	}
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.CreateUser(ctx, name, email, hash)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *storage.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, ErrIncompleteForm
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if err := s.users.TouchLogin(ctx, u.ID); err != nil {
		return "", nil, err
	}
	tok, err := s.IssueToken(u)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// IssueToken signs an HS256 session token for u.
func (s *Service) IssueToken(u *storage.User) (string, error) {
	now := s.now()
	claims := Claims{
		Name:  u.Name,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a session token and returns its claims.
func (s *Service) ParseToken(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return &claims, nil
}

// TTL returns how long issued tokens stay valid.
func (s *Service) TTL() time.Duration { return s.ttl }
