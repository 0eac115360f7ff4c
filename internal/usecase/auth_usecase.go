package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// JWTを発行する約束（実装はmainで注入）
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type AuthUsecase struct {
	userRepo   repo.UserRepository
	issuer     AccessTokenIssuer
	bcryptCost int
}

func NewAuthUsecase(userRepo repo.UserRepository, issuer AccessTokenIssuer, bcryptCost int) *AuthUsecase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUsecase{userRepo: userRepo, issuer: issuer, bcryptCost: bcryptCost}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !isEmailLike(email) {
		return nil, errInvalidArgument("invalid email")
	}
	if len(in.Password) < 8 {
		return nil, errInvalidArgument("password too short")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errInvalidArgument("name required")
	}
	role := in.Role
	if role == "" {
		role = model.RoleStaff
	}
	if role != model.RoleStaff && role != model.RoleAdmin {
		return nil, errInvalidArgument("invalid role")
	}

	//email重複チェック
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, errConflict("email already used")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return nil, errInternal("hash error")
	}

	now := time.Now()
	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, errInternal("db error")
	}
	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, errInvalidArgument("email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repo.ErrUserNotFound {
			//存在の有無は漏らさない
			return LoginOutput{}, errUnauthorized("invalid credentials")
		}
		return LoginOutput{}, errInternal("db error")
	}
	if !user.IsActive {
		return LoginOutput{}, errUnauthorized("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return LoginOutput{}, errUnauthorized("invalid credentials")
	}

	now := time.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, errInternal("token error")
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return LoginOutput{}, errInternal("db error")
	}

	return LoginOutput{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
