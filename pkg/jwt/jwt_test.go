package jwt

import (
	"errors"
	"testing"
	"time"

	"student-hub/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-at-least-16-chars",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 168 * time.Hour,
	})
}

func TestManager_GenerateAndParseAccessToken(t *testing.T) {
	mgr := newTestManager()

	token, err := mgr.GenerateAccessToken("user-001", "admin", "dept-001")
	if err != nil {
		t.Fatalf("生成 AccessToken 应成功: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 应成功: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("期望 UserID=user-001，实际=%s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 TokenType=access，实际=%s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("期望 JTI 非空")
	}
}

func TestManager_RefreshTokenType(t *testing.T) {
	mgr := newTestManager()

	token, err := mgr.GenerateRefreshToken("user-001", "faculty", "dept-001", true)
	if err != nil {
		t.Fatalf("生成 RefreshToken 应成功: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 应成功: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("期望 TokenType=refresh，实际=%s", claims.TokenType)
	}
	if !claims.RememberMe {
		t.Error("期望 RememberMe=true")
	}
}

func TestManager_ParseToken_WrongSecret(t *testing.T) {
	mgr := newTestManager()
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-16-chars-long",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := mgr.GenerateAccessToken("user-001", "admin", "dept-001")
	if err != nil {
		t.Fatalf("生成 AccessToken 应成功: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestManager_ParseToken_Expired(t *testing.T) {
	mgr := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-at-least-16-chars",
		AccessTokenTTL: -time.Minute, // 生成即过期
	})

	token, err := mgr.GenerateAccessToken("user-001", "admin", "dept-001")
	if err != nil {
		t.Fatalf("生成 AccessToken 应成功: %v", err)
	}

	if _, err := mgr.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
