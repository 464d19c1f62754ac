package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"app/internal/apperr"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AuthUsecase は登録・ログイン・パスワードリセット。
type AuthUsecase struct {
	userRepo repo.UserRepository
	tokens   TokenIssuer
	codes    ResetCodeStore
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthUsecase(
	userRepo repo.UserRepository,
	tokens TokenIssuer,
	codes ResetCodeStore,
	notifier Notifier,
	log *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		codes:    codes,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Currency string `json:"currency"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Currency: u.Currency,
	}
}

// Register は新規登録。メールアドレスは一意。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" {
		return AuthResponse{}, apperr.Validation("name and email are required")
	}
	if len(in.Password) < 8 {
		return AuthResponse{}, apperr.Validation("password must be at least 8 characters")
	}

	if _, err := u.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return AuthResponse{}, apperr.Validation("email is already registered")
	} else if err != repo.ErrNotFound {
		return AuthResponse{}, apperr.Dependency("failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, apperr.Dependency("failed to hash password", err)
	}

	created, err := u.userRepo.Create(ctx, model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Currency:     "USD",
		IsActive:     true,
	})
	if err != nil {
		return AuthResponse{}, apperr.Dependency("failed to create user", err)
	}

	token, err := u.tokens.Issue(created.ID)
	if err != nil {
		return AuthResponse{}, apperr.Dependency("failed to issue token", err)
	}
	return AuthResponse{Token: token, User: toUserResponse(created)}, nil
}

// Login はメール・パスワード認証。
// 存在しないユーザーもパスワード不一致も同じメッセージを返す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return AuthResponse{}, apperr.Validation("email and password are required")
	}

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == repo.ErrNotFound {
		return AuthResponse{}, apperr.Auth("invalid email or password")
	}
	if err != nil {
		return AuthResponse{}, apperr.Dependency("failed to find user", err)
	}
	if !user.IsActive {
		return AuthResponse{}, apperr.Auth("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResponse{}, apperr.Auth("invalid email or password")
	}

	if err := u.userRepo.TouchLastLogin(ctx, user.ID, u.now()); err != nil {
		u.log.Warn("failed to record last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return AuthResponse{}, apperr.Dependency("failed to issue token", err)
	}
	return AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// Me はトークンのユーザー情報。
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserResponse{}, apperr.Auth("unauthorized")
	}
	if err != nil {
		return UserResponse{}, apperr.Dependency("failed to find user", err)
	}
	return toUserResponse(user), nil
}

// ForgotPassword はリセットコードを発行してメールで送る。
// アカウントの有無は応答から分からないようにする（常に成功を返す）。
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperr.Validation("email is required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return nil
	}
	if err != nil {
		return apperr.Dependency("failed to find user", err)
	}
	if !user.IsActive {
		return nil
	}

	code, err := newResetCode()
	if err != nil {
		return apperr.Dependency("failed to generate reset code", err)
	}
	if err := u.codes.Set(ctx, email, code); err != nil {
		return apperr.Dependency("failed to store reset code", err)
	}
	if err := u.notifier.PasswordResetCode(ctx, email, code); err != nil {
		return apperr.Dependency("failed to send reset code", err)
	}
	return nil
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ResetPassword はコードを検証して新しいパスワードを設定する。コードは1回限り。
func (u *AuthUsecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Code == "" {
		return apperr.Validation("email and code are required")
	}
	if len(in.NewPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}

	stored, ok, err := u.codes.Get(ctx, in.Email)
	if err != nil {
		return apperr.Dependency("failed to load reset code", err)
	}
	if !ok || stored != in.Code {
		return apperr.Validation("invalid or expired reset code")
	}

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == repo.ErrNotFound {
		return apperr.Validation("invalid or expired reset code")
	}
	if err != nil {
		return apperr.Dependency("failed to find user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Dependency("failed to hash password", err)
	}
	if err := u.userRepo.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return apperr.Dependency("failed to update password", err)
	}

	if err := u.codes.Delete(ctx, in.Email); err != nil {
		u.log.Warn("failed to delete reset code", zap.String("email", in.Email), zap.Error(err))
	}
	return nil
}

// 6桁の数字コード
func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
