package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// UserIDClaim is the claim carrying the player's ID.
const UserIDClaim = "userID"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingUserID = errors.New("token has no valid user id")
)

// JwtService handles JWT operations.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a JWT for the given claims, stamped with the service issuer.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	expirationTime := time.Now().UTC().Add(expTime).Unix()
	jwtClaims := jwt.MapClaims{
		"exp": expirationTime,
		"iss": s.issuer,
	}
	for key, val := range claims {
		jwtClaims[key] = val
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
// Tokens from another issuer are rejected.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}

	return claims, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}

// UserID extracts the player ID from decoded claims.
func UserID(claims map[string]interface{}) (uuid.UUID, error) {
	raw, ok := claims[UserIDClaim].(string)
	if !ok {
		return uuid.Nil, ErrMissingUserID
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrMissingUserID
	}
	return id, nil
}
