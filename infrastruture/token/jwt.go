package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	playerClaim  = "player_id"
	sessionClaim = "session_id"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("token issued by another service")
	ErrMissingClaim  = errors.New("token is missing a binding claim")
)

// JwtService signs and verifies session binding tokens.
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

// Generate creates a JWT carrying the binding.
func (s *JwtService) Generate(b i.Binding, expTime time.Duration) (string, error) {
	jwtClaims := jwt.MapClaims{
		"exp":        time.Now().UTC().Add(expTime).Unix(),
		"iss":        s.issuer,
		playerClaim:  b.PlayerID.String(),
		sessionClaim: b.SessionID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the binding it carries.
func (s *JwtService) Decode(tokenString string) (i.Binding, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return i.Binding{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return i.Binding{}, ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return i.Binding{}, ErrInvalidIssuer
	}

	playerID, err := uuidClaim(claims, playerClaim)
	if err != nil {
		return i.Binding{}, err
	}
	sessionID, err := uuidClaim(claims, sessionClaim)
	if err != nil {
		return i.Binding{}, err
	}

	return i.Binding{PlayerID: playerID, SessionID: sessionID}, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}

func uuidClaim(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return uuid.Nil, ErrMissingClaim
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrMissingClaim
	}
	return id, nil
}
