package validators

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseUserID проверяет идентификатор пользователя: положительное целое
func ParseUserID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("user id %q is not a number", value)
	}
	if id <= 0 {
		return 0, fmt.Errorf("user id must be positive, got %d", id)
	}
	return id, nil
}

// ParseLimit разбирает необязательный размер выборки; пустая строка даёт 0 (значение по умолчанию)
func ParseLimit(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("limit %q must be a non-negative number", value)
	}
	return n, nil
}
