package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"oncotrack/internal/converter"
	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/domain/entity"
	"oncotrack/internal/domain/repository"
	"oncotrack/internal/service"
	"oncotrack/pkg/jwt"
	"oncotrack/pkg/timeutil"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrIncorrectPassword     = errors.New("incorrect password")
	ErrTooManyAttempts       = errors.New("too many login attempts, try again later")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrInvalidDateFormat     = errors.New("invalid date format, use YYYY-MM-DD")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, clientIP string) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uint, accessTokenID string, refreshToken string) error
	IsAccessTokenActive(ctx context.Context, userID uint, tokenID string) (bool, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	sessions     service.SessionStore
	limiter      service.AttemptLimiter
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	sessions service.SessionStore,
	limiter service.AttemptLimiter,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		jwtService:   jwtService,
		sessions:     sessions,
		limiter:      limiter,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	birthday, err := time.Parse(timeutil.DayKeyLayout, req.Birthday)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	diagnosisDate, err := time.Parse(timeutil.DayKeyLayout, req.DiagnosisDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	username := strings.TrimSpace(req.Username)
	existing, err := u.userRepo.FindByUsername(tx, username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameAlreadyExists
	}

	user := &entity.User{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Birthday:      birthday,
		Phone:         req.Phone,
		Disease:       req.Disease,
		DiagnosisDate: diagnosisDate,
		Username:      username,
		Password:      string(hashedPassword),
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID, converter.UserToResponse(user)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest, clientIP string) (*dto.LoginResponse, error) {
	attemptKey := strings.ToLower(strings.TrimSpace(req.Username)) + "|" + clientIP

	blocked, err := u.limiter.TooManyAttempts(ctx, attemptKey)
	if err != nil {
		u.log.Warnf("Failed to check login attempts: %+v", err)
		return nil, err
	}
	if blocked {
		return nil, ErrTooManyAttempts
	}

	// Find user by username (read-only, no transaction needed)
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), strings.TrimSpace(req.Username))
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		u.recordFailure(ctx, attemptKey)
		return nil, ErrUserNotFound
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		u.recordFailure(ctx, attemptKey)
		return nil, ErrIncorrectPassword
	}

	if err := u.limiter.Reset(ctx, attemptKey); err != nil {
		u.log.Warnf("Failed to reset login attempts: %+v", err)
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db, &user.ID, entity.AuditActionUserLogin, "user", user.ID, nil); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		TokenResponse: *tokens,
	}, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	// Validate refresh token
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := service.RefreshTokenKey(claims.UserID, claims.TokenID)
	exists, err := u.sessions.Exists(ctx, refreshKey)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	// Delete old refresh token
	if err := u.sessions.Delete(ctx, refreshKey); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Username)
}

// Logout revokes the access token of the current request and, when given,
// the refresh token issued with it.
func (u *authUsecase) Logout(ctx context.Context, userID uint, accessTokenID string, refreshToken string) error {
	keys := []string{service.AccessTokenKey(userID, accessTokenID)}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err != nil || claims.TokenType != jwt.RefreshToken || claims.UserID != userID {
			return ErrInvalidToken
		}
		keys = append(keys, service.RefreshTokenKey(userID, claims.TokenID))
	}

	if err := u.sessions.Delete(ctx, keys...); err != nil {
		u.log.Warnf("Failed to delete session tokens: %+v", err)
		return err
	}

	return u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionUserLogout, "user", userID, nil)
}

func (u *authUsecase) IsAccessTokenActive(ctx context.Context, userID uint, tokenID string) (bool, error) {
	exists, err := u.sessions.Exists(ctx, service.AccessTokenKey(userID, tokenID))
	if err != nil {
		u.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return exists, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uint, username string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, username)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, username)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.sessions.Save(ctx, service.AccessTokenKey(userID, accessTokenID), u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	if err := u.sessions.Save(ctx, service.RefreshTokenKey(userID, refreshTokenID), u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) recordFailure(ctx context.Context, key string) {
	if err := u.limiter.RecordFailure(ctx, key); err != nil {
		u.log.Warnf("Failed to record login attempt: %+v", err)
	}
}
