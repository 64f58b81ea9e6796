package services

import (
	"time"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/go-chi/jwtauth/v5"
)

type IdentityService interface {
	GenerateJWT(userID int64, role string) (string, error)
	GetTokenAuth() *jwtauth.JWTAuth
}

type Identity struct {
	JWTAuth *jwtauth.JWTAuth
}

const (
	TokenSecterAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour
)

// Роли в токене
const (
	RoleOwner  = "owner"
	RolePlayer = "player"
)

// Создание сервиса
func NewIdentity(cfg config.ServerConfig) IdentityService {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.JWTSecret), nil)
	return &Identity{JWTAuth: tokenAuth}
}

// Создание строки JWT токена
func (i *Identity) GenerateJWT(userID int64, role string) (string, error) {
	expirationTime := time.Now().Add(TokenExpirationTime)

	_, tokenString, err := i.JWTAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"exp":     expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
