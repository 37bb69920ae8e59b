package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"refurbstore/internal/config"
	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 12 * time.Hour

type AuthUsecase struct {
	cfg   config.Config
	users repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users}
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Role        string `json:"role"`
}

// Login checks the password and issues an HS256 access token. Wrong
// username and wrong password return the same message so the endpoint
// does not leak which accounts exist.
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "username and password required")
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err == repo.ErrNotFound {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresIn, err := u.signAccessToken(user)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login")
	return LoginOutput{AccessToken: token, ExpiresIn: expiresIn, Role: string(user.Role)}, nil
}

func (u *AuthUsecase) signAccessToken(user model.User) (string, int, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int(accessTokenTTL.Seconds()), nil
}

// SeedAdmin creates the admin account from config on first boot. An
// existing account is left untouched, so password changes in the env do
// not overwrite whatever is in the store.
func (u *AuthUsecase) SeedAdmin(ctx context.Context) error {
	if u.cfg.AdminUsername == "" || u.cfg.AdminPassword == "" {
		log.Warn().Msg("admin credentials not configured, skipping seed")
		return nil
	}

	_, err := u.users.FindByUsername(ctx, u.cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if err != repo.ErrNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     u.cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := u.users.Create(ctx, &admin); err != nil {
		return err
	}

	log.Info().Str("username", admin.Username).Msg("seeded admin account")
	return nil
}
