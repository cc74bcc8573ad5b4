package usecase

import (
	"context"
	"time"

	"cridaa-booking/internal/domain/user"
	"cridaa-booking/internal/infra"
	"cridaa-booking/internal/pkg/clock"
	"cridaa-booking/internal/pkg/errs"
	"cridaa-booking/internal/pkg/jwt"
	"cridaa-booking/internal/pkg/password"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

//go:generate mockgen -source=auth.go -destination=../../tests/mock/usecase/auth.go -package=usecasemock

var (
	ErrUserNotFound       = errs.New("user not found")
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrAccountTaken       = errs.New("email or username already registered")
	ErrWeakPassword       = errs.New("password must be at least 6 characters")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type SignupParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// UserView is the public projection of an account; the password hash
// never leaves the usecase layer.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

type AuthResult struct {
	Token string
	User  *UserView
}

type AuthUseCase interface {
	Signup(ctx context.Context, params SignupParams) (*AuthResult, error)
	Login(ctx context.Context, email, pass string) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
	clock      clock.Clock
	// Profiles are immutable after signup, so a short cache is safe.
	profiles *gocache.Cache
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service, clk clock.Clock) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		clock:      clk,
		profiles:   gocache.New(1*time.Minute, 5*time.Minute),
	}
}

func (a *authUseCaseImpl) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	hash, err := password.Hash(params.Password)
	if err != nil {
		if errs.Is(err, password.ErrTooShort) {
			return nil, errs.Mark(err, ErrWeakPassword)
		}
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	account, err := user.New(
		params.Username, params.Email, hash,
		params.FirstName, params.LastName, params.Phone,
		a.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := a.userRepo.Create(ctx, account); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrAccountTaken)
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	return a.issueToken(account)
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, pass string) (*AuthResult, error) {
	account, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same error as a bad password; existence is not revealed here.
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	if err := password.Compare(account.PasswordHash, pass); err != nil {
		return nil, ErrInvalidCredentials
	}

	return a.issueToken(account)
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	if cached, found := a.profiles.Get(userID.String()); found {
		return cached.(*UserView), nil
	}

	account, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	view := viewOf(account)
	a.profiles.Set(userID.String(), view, gocache.DefaultExpiration)
	return view, nil
}

func (a *authUseCaseImpl) issueToken(account *user.User) (*AuthResult, error) {
	token, err := a.jwtService.GenerateToken(account.ID, account.Username)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{Token: token, User: viewOf(account)}, nil
}

func viewOf(account *user.User) *UserView {
	return &UserView{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
}
