package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/playhub/community-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned when a token fails signature or expiry checks
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT token claims.
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// IdentityProvider hashes and verifies credentials and issues session tokens.
type IdentityProvider interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
	IssueToken(user *models.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

// Provider implements IdentityProvider with bcrypt and HS256 JWTs.
type Provider struct {
	secret     []byte
	expiry     time.Duration
	bcryptCost int
}

// NewProvider creates a Provider. A zero cost selects bcrypt.DefaultCost.
func NewProvider(secret string, expiry time.Duration, bcryptCost int) *Provider {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Provider{
		secret:     []byte(secret),
		expiry:     expiry,
		bcryptCost: bcryptCost,
	}
}

var _ IdentityProvider = (*Provider)(nil)

func (p *Provider) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (p *Provider) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (p *Provider) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (p *Provider) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
