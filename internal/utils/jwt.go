package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an auth token. Tokens are not renewable;
// a caller re-authenticates to obtain a fresh one.
const TokenTTL = 24 * time.Hour

// JWTClaims is the signed claim set carried by the auth cookie.
type JWTClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTUtil provides JWT generation and validation
type JWTUtil struct {
	secretKey string
}

// NewJWTUtil creates a new JWTUtil. The secret is mandatory; signing with an
// empty key would produce tokens anyone can forge.
func NewJWTUtil(secretKey string) (*JWTUtil, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("jwt secret key is not set")
	}
	return &JWTUtil{secretKey: secretKey}, nil
}

// GenerateToken signs a new token for the given user
func (ju *JWTUtil) GenerateToken(userID int, email, role string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken checks signature and expiry and returns the claims. Any
// failure on untrusted input (garbage, bad signature, expired, missing
// fields) comes back as an error, never a panic.
func (ju *JWTUtil) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" || claims.Email == "" || claims.Role == "" {
		return nil, fmt.Errorf("token is missing required claims")
	}
	return claims, nil
}

// UserID returns the numeric subject of the claim set.
func (c *JWTClaims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %w", c.Subject, err)
	}
	return id, nil
}
