package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/spacyk/eshop-recipe/internal/constants"
	"github.com/spacyk/eshop-recipe/internal/infra/auth"
)

// AuthMiddleware 所有會改購物車狀態的端點都要掛
// token 驗證交給外部認證中心，沒登入一律303導去登入頁
func AuthMiddleware(verifier auth.IAuthVerifier, loginURL string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorizationHeader := r.Header.Get(constants.AuthorizationHeaderKey)
			if authorizationHeader == "" {
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}

			fields := strings.Fields(authorizationHeader)
			if len(fields) < 2 || strings.ToLower(fields[0]) != constants.AuthorizationTypeBearer {
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}

			userInfo, err := verifier.VerifyToken(r.Context(), fields[1])
			if err != nil {
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), constants.UserIDKey, userInfo.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID 從請求上下文取已驗證的用戶id，沒驗證過回傳 -1
func GetUserID(ctx context.Context) int {
	if v := ctx.Value(constants.UserIDKey); v != nil {
		return v.(int)
	}
	return -1
}
