package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"lead-manager/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
}

func TestAccessTokenTTL(t *testing.T) {
	t.Setenv("TOKEN_EXPIRATION_MINUTES", "")
	require.Equal(t, DefaultTokenExpirationMinutes*time.Minute, AccessTokenTTL())

	t.Setenv("TOKEN_EXPIRATION_MINUTES", "15")
	require.Equal(t, 15*time.Minute, AccessTokenTTL())

	t.Setenv("TOKEN_EXPIRATION_MINUTES", "bad")
	require.Equal(t, DefaultTokenExpirationMinutes*time.Minute, AccessTokenTTL())

	t.Setenv("TOKEN_EXPIRATION_MINUTES", "-5")
	require.Equal(t, DefaultTokenExpirationMinutes*time.Minute, AccessTokenTTL())
}

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restorePasswordGlobals)

	hash, err := HashPassword("pw")
	require.NoError(t, err)
	u := model.User{Email: "alice@example.com", PasswordHash: hash}

	require.NoError(t, AuthenticateUser(context.Background(), u, "pw"))
	require.Error(t, AuthenticateUser(context.Background(), u, "bad"))

	// 哈希損壞同樣視為驗證失敗
	require.Error(t, AuthenticateUser(context.Background(), model.User{PasswordHash: "broken"}, "pw"))
}

func TestIssueAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)

	t.Setenv("JWT_SECRET", "")
	_, err := IssueAccessToken(model.User{}, time.Minute)
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	tok, err := IssueAccessToken(model.User{ID: 5, Email: "alice@example.com"}, time.Minute)
	require.NoError(t, err)

	claims := &CustomClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "5", claims.Subject)
}

func TestVerifyAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)

	t.Setenv("JWT_SECRET", "")
	_, err := VerifyAccessToken("abc")
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	_, err = VerifyAccessToken("invalid")
	require.ErrorIs(t, err, ErrTokenInvalid)

	// alg=none 一律拒絕
	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = VerifyAccessToken(tokNone)
	require.ErrorIs(t, err, ErrTokenInvalid)

	// 有效令牌
	tok, err := IssueAccessToken(model.User{ID: 3, Email: "bob@example.com"}, time.Minute)
	require.NoError(t, err)
	claims, err := VerifyAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, 3, claims.UserID)
	require.Equal(t, "bob@example.com", claims.Email)

	// 竄改簽章段一個字元
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)
	_, err = VerifyAccessToken(tampered)
	require.ErrorIs(t, err, ErrTokenInvalid)

	// 逾期令牌與無效令牌可區分
	expired, err := IssueAccessToken(model.User{ID: 3}, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyAccessToken(expired)
	require.ErrorIs(t, err, ErrTokenExpired)

	// 解析成功但 token 無效
	parseWithClaims = func(s string, c jwt.Claims, k jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = VerifyAccessToken("whatever")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
