package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"event-judging/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidKey   = errors.New("invalid EC private key")
)

// JWTClaims represents the claims in a JWT token. The role is the one the
// principal acts under for the lifetime of the token.
type JWTClaims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and validates principal tokens
type Service struct {
	privateKey    *ecdsa.PrivateKey
	publicKey     *ecdsa.PublicKey
	jwtExpiration time.Duration
}

// NewService creates a new authentication service from a PEM encoded EC
// private key. A secret that is not a PEM key yields a throwaway key pair,
// which only makes sense for development.
func NewService(secret string, expiration time.Duration) *Service {
	privateKey, err := ParsePrivateKeyPEM(secret)
	if err != nil {
		slog.Warn("JWT secret is not a PEM EC key, generating an ephemeral signing key")
		privateKey, err = GenerateKey()
		if err != nil {
			panic(fmt.Sprintf("failed to generate ECDSA key: %v", err))
		}
	}
	return NewServiceWithKey(privateKey, expiration)
}

// NewServiceWithKey creates a service around an existing key
func NewServiceWithKey(key *ecdsa.PrivateKey, expiration time.Duration) *Service {
	return &Service{
		privateKey:    key,
		publicKey:     &key.PublicKey,
		jwtExpiration: expiration,
	}
}

// GenerateToken issues an access token for a user acting under role
func (s *Service) GenerateToken(userID string, role models.Role) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}

	jti, err := GenerateRandomToken(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate JTI: %w", err)
	}

	now := time.Now()
	claims := JWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	tokenString, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateRandomToken generates a URL safe random token
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// GenerateKey creates a new P-256 signing key
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// ParsePrivateKeyPEM parses an "EC PRIVATE KEY" PEM block. Escaped newlines
// ("\n" as two characters, as found in .env files) are accepted.
func ParsePrivateKeyPEM(secret string) (*ecdsa.PrivateKey, error) {
	secret = strings.ReplaceAll(secret, `\n`, "\n")
	block, _ := pem.Decode([]byte(secret))
	if block == nil {
		return nil, ErrInvalidKey
	}
	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return key, nil
}

// EncodePrivateKeyPEM is the inverse of ParsePrivateKeyPEM
func EncodePrivateKeyPEM(key *ecdsa.PrivateKey) (string, error) {
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return "", fmt.Errorf("failed to marshal private key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})), nil
}
