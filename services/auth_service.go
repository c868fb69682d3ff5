package services

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"heritage-map/utils/errors"
)

// AuthService validates the Authorization header of operator calls. It
// accepts "Bearer <jwt>" signed with HS256, or "ApiKey <key>" matching a
// bcrypt hash.
type AuthService struct {
	jwtSecret  []byte
	apiKeyHash []byte
}

func NewAuthService(jwtSecret, apiKeyHash string) *AuthService {
	return &AuthService{jwtSecret: []byte(jwtSecret), apiKeyHash: []byte(apiKeyHash)}
}

// Authorize returns the caller subject for a valid header.
func (s *AuthService) Authorize(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.ErrUnauthorized
	}
	scheme, credential, found := strings.Cut(header, " ")
	credential = strings.TrimSpace(credential)
	if !found || credential == "" {
		return "", errors.NewUnauthorizedError("Malformed Authorization header")
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		return s.validateJWT(credential)
	case "apikey":
		return s.validateAPIKey(credential)
	default:
		return "", errors.NewUnauthorizedError("Unsupported authorization scheme")
	}
}

func (s *AuthService) validateJWT(tokenString string) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", errors.NewUnauthorizedError("Token authentication is not configured")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.NewUnauthorizedError("Invalid token")
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if userID, ok := claims["userID"].(string); ok && userID != "" {
				return userID, nil
			}
		}
		return "", errors.NewUnauthorizedError("Token has no subject")
	}
	return subject, nil
}

func (s *AuthService) validateAPIKey(key string) (string, error) {
	if len(s.apiKeyHash) == 0 {
		return "", errors.NewUnauthorizedError("API key authentication is not configured")
	}
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(key)); err != nil {
		return "", errors.NewUnauthorizedError("Invalid API key")
	}
	return "service", nil
}
