package usecase

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/propline/lead-service/internal/entity"
)

const bcryptCost = 10

type AuthUseCase struct {
	Users  UserRepositoryInterface
	Tokens TokenIssuerInterface
}

func NewAuthUseCase(users UserRepositoryInterface, tokens TokenIssuerInterface) *AuthUseCase {
	return &AuthUseCase{Users: users, Tokens: tokens}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if errs := ValidateRegisterInput(input); len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to hash password"}
	}

	now := time.Now()
	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         entity.Role(input.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeEmailTaken, Message: "Email already registered"}
		}
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to persist user: " + err.Error(),
		}
	}

	return user, nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login deliberately returns the same error for an unknown email and a wrong
// password so the endpoint does not leak which emails are registered.
func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := uc.Users.FindByEmail(ctx, input.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &DomainError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
	}
	if err != nil {
		return "", &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return "", &DomainError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
	}

	token, err := uc.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", &TechnicalError{Code: CodeDatabase, Message: "failed to sign token"}
	}

	return token, nil
}
