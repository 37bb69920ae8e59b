package usecase

import (
	"context"
	"net/http"
	"testing"

	"refurbstore/internal/config"
	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:     "test_secret",
		AdminUsername: "admin",
		AdminPassword: "hunter2",
	}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue an admin token", func(t *testing.T) {
		users := new(mockUserRepo)
		uc := NewAuthUsecase(testConfig(), users)

		users.On("FindByUsername", ctx, "admin").Return(model.User{
			ID: 1, Username: "admin", PasswordHash: hashFor(t, "hunter2"), Role: model.RoleAdmin,
		}, nil)

		out, err := uc.Login(ctx, LoginInput{Username: "admin", Password: "hunter2"})
		require.NoError(t, err)
		assert.Equal(t, "admin", out.Role)
		assert.Positive(t, out.ExpiresIn)

		token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
			return []byte("test_secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "admin", claims["role"])
		assert.Equal(t, float64(1), claims["sub"])
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserRepo)
		uc := NewAuthUsecase(testConfig(), users)

		users.On("FindByUsername", ctx, "admin").Return(model.User{
			ID: 1, Username: "admin", PasswordHash: hashFor(t, "hunter2"),
		}, nil)

		_, err := uc.Login(ctx, LoginInput{Username: "admin", Password: "wrong"})
		requireHTTPError(t, err, http.StatusUnauthorized, "invalid credentials")
	})

	t.Run("unknown user gives the same message", func(t *testing.T) {
		users := new(mockUserRepo)
		uc := NewAuthUsecase(testConfig(), users)

		users.On("FindByUsername", ctx, "ghost").Return(model.User{}, repo.ErrNotFound)

		_, err := uc.Login(ctx, LoginInput{Username: "ghost", Password: "whatever"})
		requireHTTPError(t, err, http.StatusUnauthorized, "invalid credentials")
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := NewAuthUsecase(testConfig(), new(mockUserRepo))

		_, err := uc.Login(ctx, LoginInput{Username: " ", Password: ""})
		requireHTTPError(t, err, http.StatusBadRequest, "username and password required")
	})
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin when missing", func(t *testing.T) {
		users := new(mockUserRepo)
		uc := NewAuthUsecase(testConfig(), users)

		users.On("FindByUsername", ctx, "admin").Return(model.User{}, repo.ErrNotFound)
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			if u.Username != "admin" || u.Role != model.RoleAdmin {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")) == nil
		})).Return(nil)

		require.NoError(t, uc.SeedAdmin(ctx))
		users.AssertExpectations(t)
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		users := new(mockUserRepo)
		uc := NewAuthUsecase(testConfig(), users)

		users.On("FindByUsername", ctx, "admin").Return(model.User{ID: 1, Username: "admin"}, nil)

		require.NoError(t, uc.SeedAdmin(ctx))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
