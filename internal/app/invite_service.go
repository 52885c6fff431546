package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// InviteService signs and verifies shareable room invite tokens. A token
// carries the room code so that an invited player can resolve the room
// without being told the code out of band.
type InviteService struct {
	secret string
	issuer string
	ttl    time.Duration
}

func NewInviteService(secret, issuer string, ttl time.Duration) *InviteService {
	return &InviteService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}
}

// GenerateToken issues a signed invite for the given room code.
func (s *InviteService) GenerateToken(roomCode, hostUserID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("invite service is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("invite config is incomplete")
	}
	if roomCode == "" {
		return "", fmt.Errorf("room code is required")
	}

	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"sub":  hostUserID,
		"exp":  time.Now().Add(s.ttl).Unix(),
		"code": roomCode,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ParseToken verifies an invite and returns the room code it grants.
func (s *InviteService) ParseToken(tokenString string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("invite service is nil")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid invite token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid invite token")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return "", fmt.Errorf("invite token issuer mismatch")
	}

	code, _ := claims["code"].(string)
	if code == "" {
		return "", fmt.Errorf("invite token has no room code")
	}
	return code, nil
}
