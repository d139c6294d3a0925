package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrInvalidToken = errors.New("invalid token")

type IAuthVerifier interface {
	VerifyToken(ctx context.Context, accessToken string) (*UserInfo, error)
}

// UserInfo 認證中心回傳的用戶資訊
type UserInfo struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
}

// AuthCenterVerifier 把token丟給外部認證中心驗證，本服務不自己管身份
type AuthCenterVerifier struct {
	baseURL string
	client  *http.Client
}

func NewAuthCenterVerifier(baseURL string) *AuthCenterVerifier {
	return &AuthCenterVerifier{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// VerifyToken 呼叫認證中心的 /auth/me 驗證 access token
func (v *AuthCenterVerifier) VerifyToken(ctx context.Context, accessToken string) (*UserInfo, error) {
	url := v.baseURL + "/api/v1/auth/me"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending verification request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &userInfo, nil
}
