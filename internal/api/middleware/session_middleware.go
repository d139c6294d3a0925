package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/spacyk/eshop-recipe/internal/constants"
)

// SessionMiddleware 沒有session cookie就發一個
// payment intent 以 session id 為 key 存在 redis
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionId string
		if cookie, err := r.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
			sessionId = cookie.Value
		} else {
			sessionId = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     constants.SessionCookieName,
				Value:    sessionId,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), constants.SessionIDKey, sessionId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID 從請求上下文取 session id
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(constants.SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}
