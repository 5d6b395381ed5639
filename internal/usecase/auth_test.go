package usecase_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/propline/lead-service/internal/entity"
	"github.com/propline/lead-service/internal/usecase"
)

func TestRegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		// Plaintext never reaches the repository.
		return u.PasswordHash != "testpassword" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("testpassword")) == nil
	})).Return(nil)

	uc := usecase.NewAuthUseCase(users, new(MockTokenIssuer))

	user, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     "Ana",
		Email:    "ana@propline.io",
		Password: "testpassword",
		Role:     "SalesAgent",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.RoleSalesAgent, user.Role)
	users.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	uc := usecase.NewAuthUseCase(new(MockUserRepository), new(MockTokenIssuer))

	tests := []struct {
		name  string
		input usecase.RegisterInput
		field string
	}{
		{"missing name", usecase.RegisterInput{Email: "a@b.io", Password: "longenough", Role: "Admin"}, "name"},
		{"bad email", usecase.RegisterInput{Name: "A", Email: "nope", Password: "longenough", Role: "Admin"}, "email"},
		{"short password", usecase.RegisterInput{Name: "A", Email: "a@b.io", Password: "short", Role: "Admin"}, "password"},
		{"unknown role", usecase.RegisterInput{Name: "A", Email: "a@b.io", Password: "longenough", Role: "Manager"}, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tt.input)

			var errs usecase.ValidationErrors
			assert.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("Create", ctx, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	uc := usecase.NewAuthUseCase(users, new(MockTokenIssuer))

	_, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     "Ana",
		Email:    "ana@propline.io",
		Password: "testpassword",
		Role:     "SalesAgent",
	})

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeEmailTaken, domainErr.Code)
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)
	user := &entity.User{ID: 1, Email: "ana@propline.io", PasswordHash: string(hash), Role: entity.RoleAdmin}

	users := new(MockUserRepository)
	users.On("FindByEmail", ctx, "ana@propline.io").Return(user, nil)

	tokens := new(MockTokenIssuer)
	tokens.On("Issue", int64(1), entity.RoleAdmin).Return("signed.jwt.token", nil)

	uc := usecase.NewAuthUseCase(users, tokens)

	token, err := uc.Login(ctx, usecase.LoginInput{Email: "ana@propline.io", Password: "testpassword"})

	assert.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", token)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)
	user := &entity.User{ID: 1, Email: "ana@propline.io", PasswordHash: string(hash)}

	users := new(MockUserRepository)
	users.On("FindByEmail", ctx, "ana@propline.io").Return(user, nil)

	uc := usecase.NewAuthUseCase(users, new(MockTokenIssuer))

	_, err := uc.Login(ctx, usecase.LoginInput{Email: "ana@propline.io", Password: "wrong"})

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeInvalidCredentials, domainErr.Code)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("FindByEmail", ctx, "ghost@propline.io").Return(nil, sql.ErrNoRows)

	uc := usecase.NewAuthUseCase(users, new(MockTokenIssuer))

	_, err := uc.Login(ctx, usecase.LoginInput{Email: "ghost@propline.io", Password: "whatever"})

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeInvalidCredentials, domainErr.Code)
	assert.Equal(t, "Invalid credentials", domainErr.Message)
}
