package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// parseStaffToken разбирает и проверяет JWT из заголовка Authorization.
// Возвращает ID и ник сотрудника.
func parseStaffToken(r *http.Request, jwtKey []byte) (uint, string, error) {
	// Получаем токен из заголовка
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return 0, "", fmt.Errorf("authorization header is required")
	}

	// Убираем префикс "Bearer " если он есть
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	// Парсим и проверяем токен
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("invalid token")
	}

	// Проверяем claims
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("invalid token claims")
	}

	staffID, ok := claims["staff_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("invalid staff_id in token")
	}
	nickname, ok := claims["nickname"].(string)
	if !ok {
		return 0, "", fmt.Errorf("invalid nickname in token")
	}

	return uint(staffID), nickname, nil
}

// AuthMiddleware проверяет JWT токен и добавляет сотрудника в контекст
func AuthMiddleware(jwtKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staffID, nickname, err := parseStaffToken(r, jwtKey)
			if err != nil {
				http.Error(w, "Login required", http.StatusUnauthorized)
				return
			}

			// Добавляем заголовок X-Staff-ID
			r.Header.Set("X-Staff-ID", strconv.FormatUint(uint64(staffID), 10))

			// Добавляем информацию о сотруднике в контекст запроса
			ctx := r.Context()
			ctx = context.WithValue(ctx, "staff_id", staffID)
			ctx = context.WithValue(ctx, "nickname", nickname)
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuthMiddleware добавляет сотрудника в контекст, если токен
// корректен, но пропускает запрос и без авторизации. Списки для
// неавторизованных запросов отдают пустой результат вместо ошибки.
func OptionalAuthMiddleware(jwtKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if staffID, nickname, err := parseStaffToken(r, jwtKey); err == nil {
				ctx := r.Context()
				ctx = context.WithValue(ctx, "staff_id", staffID)
				ctx = context.WithValue(ctx, "nickname", nickname)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetStaffFromContext получает информацию о сотруднике из контекста
func GetStaffFromContext(r *http.Request) (uint, string, error) {
	staffID, ok := r.Context().Value("staff_id").(uint)
	if !ok {
		return 0, "", fmt.Errorf("staff_id not found in context")
	}

	nickname, ok := r.Context().Value("nickname").(string)
	if !ok {
		return 0, "", fmt.Errorf("nickname not found in context")
	}

	return staffID, nickname, nil
}
