package helpers

import (
	"context"
	"fmt"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/go-chi/jwtauth/v5"
)

// GetRole - извлекает роль пользователя из контекста JWT токена
func GetRole(context context.Context) (string, error) {
	_, claims, _ := jwtauth.FromContext(context)
	role, ok := claims["role"].(string)
	if !ok {
		logger.Warn("Undefined role from token")
		return "", fmt.Errorf("undefined role")
	}
	return role, nil
}

// HasRole - роль из токена совпадает с ожидаемой
func HasRole(context context.Context, role string) bool {
	got, err := GetRole(context)
	return err == nil && got == role
}
