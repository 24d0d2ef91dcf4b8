package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "momshop-api"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidClaims = errors.New("invalid claims")
	ErrMissingJWTKey = errors.New("JWT secret key is not configured")
)

// Principal is the authenticated identity carried by a token
type Principal struct {
	UserID     string
	Username   string
	Role       string
	SellerID   string
	CustomerID string
}

// JWTClaims are the custom claims of an access token
type JWTClaims struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	SellerID   string `json:"seller_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// Principal returns the identity described by the claims
func (c *JWTClaims) Principal() Principal {
	return Principal{
		UserID:     c.UserID,
		Username:   c.Username,
		Role:       c.Role,
		SellerID:   c.SellerID,
		CustomerID: c.CustomerID,
	}
}

// JWTService issues and validates HS256 tokens
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTService creates a JWTService; expiration defaults to 24 hours
func NewJWTService(secretKey string, expiration time.Duration) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &JWTService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// GenerateToken issues a token for p and returns it with its expiry
func (s *JWTService) GenerateToken(p Principal) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiration)

	claims := JWTClaims{
		UserID:     p.UserID,
		Username:   p.Username,
		Role:       p.Role,
		SellerID:   p.SellerID,
		CustomerID: p.CustomerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   p.UserID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken checks signature and expiry and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.parse(tokenString, jwt.WithTimeFunc(s.now))
}

// RefreshToken issues a new token from a valid one, or from one that expired
// less than one expiration period ago
func (s *JWTService) RefreshToken(tokenString string) (string, time.Time, error) {
	claims, err := s.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", time.Time{}, err
	}
	if claims.ExpiresAt == nil || s.now().After(claims.ExpiresAt.Add(s.expiration)) {
		return "", time.Time{}, ErrExpiredToken
	}
	return s.GenerateToken(claims.Principal())
}

func (s *JWTService) parse(tokenString string, opts ...jwt.ParserOption) (*JWTClaims, error) {
	opts = append(opts, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
