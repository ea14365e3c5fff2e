package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/logger"
	"go-quickteller/internal/pkg/validation"
)

const (
	ClientDataKey   = "client_data"
	defaultSecret   = "$d3f4uIt_s3cr3t_key#"
	defaultDuration = 24 * time.Hour
)

var ErrMissingClient = errors.New("client data not found in token claims")

// Manager signs and validates API client tokens with an HMAC secret.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	if secret == "" {
		logger.Warning.Println("JWT_SECRET not found, using default secret")
		secret = defaultSecret
	}
	return &Manager{secret: []byte(secret)}
}

// GenerateToken signs a token for client valid for ttl, or 24 hours when ttl
// is zero.
func (m *Manager) GenerateToken(client types.ApiClient, ttl time.Duration) (string, *time.Time, error) {
	if ttl <= 0 {
		ttl = defaultDuration
	}
	exp := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"exp":         exp.Unix(),
		"sub":         client.ID,
		ClientDataKey: client,
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, &exp, nil
}

func (m *Manager) ValidateToken(jwtToken string) (*types.ApiClient, error) {
	token, err := jwt.Parse(jwtToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims[ClientDataKey] == nil {
		return nil, ErrMissingClient
	}

	clientBytes, err := json.Marshal(claims[ClientDataKey])
	if err != nil {
		return nil, fmt.Errorf("error marshalling client data: %v", err)
	}

	var client types.ApiClient
	if err := json.Unmarshal(clientBytes, &client); err != nil {
		return nil, fmt.Errorf("error unmarshalling client data: %v", err)
	}

	if err := validation.Validate(client); err != nil {
		return nil, err
	}

	return &client, nil
}
