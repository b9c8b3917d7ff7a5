package service

import (
	"errors"
	"testing"
	"time"

	"cleanleb_backend/internal/config"
	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"
	"cleanleb_backend/internal/util"

	"gorm.io/gorm"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
	}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Name:     "Rami",
		Email:    "rami@example.com",
		Password: "s3cret-pass",
		Role:     model.Citizen,
	}
	token, err := svc.Register(user)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if user.Password == "s3cret-pass" {
		t.Error("password stored in plain text")
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Citizen {
		t.Errorf("claims = %+v", claims)
	}

	_, logged, err := svc.Login("rami@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %d, want %d", logged.ID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	first := &model.User{Name: "A", Email: "dup@example.com", Password: "pw-one-long"}
	if _, err := svc.Register(first); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	second := &model.User{Name: "B", Email: "dup@example.com", Password: "pw-two-long"}
	if _, err := svc.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestDuplicateEmailRowTranslates(t *testing.T) {
	svc := newAuthService(t)

	if err := svc.UserRepo.Create(&model.User{Name: "A", Email: "race@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// The translated duplicate-key error backs the conflict mapping for
	// a concurrent registration that slips past the pre-check.
	err := svc.UserRepo.Create(&model.User{Name: "B", Email: "race@example.com", Password: "pw"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("err = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "C", Email: "c@example.com", Password: "right-password"}
	if _, err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login("c@example.com", "wrong-password"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "whatever"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}
