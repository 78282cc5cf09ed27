package service

import (
	"errors"
	"testing"

	"github.com/bloomery-shop/internal/config"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) *AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate users failed: %v", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		t.Fatalf("reset users failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-with-enough-entropy"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 6
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuthServiceTest(t)

	user, token, err := svc.Register(RegisterInput{
		Username: "rosefan",
		Email:    "Rose.Fan@Example.com",
		Password: "petals123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token on register")
	}
	if user.Email != "rose.fan@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Role != "customer" {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.PasswordHash == "petals123" {
		t.Fatalf("password stored in plain text")
	}

	loggedIn, loginToken, err := svc.Login(LoginInput{Email: "rose.fan@example.com", Password: "petals123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginToken == "" {
		t.Fatalf("expected token on login")
	}
	if loggedIn.LastLoginAt == nil {
		t.Fatalf("expected last_login_at to be set")
	}

	claims, err := svc.ParseUserJWT(loginToken)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := setupAuthServiceTest(t)

	if _, _, err := svc.Register(RegisterInput{Username: "first", Email: "dup@example.com", Password: "petals123"}); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}

	if _, _, err := svc.Register(RegisterInput{Username: "first", Email: "other@example.com", Password: "petals123"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if _, _, err := svc.Register(RegisterInput{Username: "second", Email: "dup@example.com", Password: "petals123"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, _, err := svc.Register(RegisterInput{Username: "weak", Email: "weak@example.com", Password: "123"})
	if !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupAuthServiceTest(t)

	if _, _, err := svc.Register(RegisterInput{Username: "locked", Email: "locked@example.com", Password: "petals123"}); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}

	if _, _, err := svc.Login(LoginInput{Email: "locked@example.com", Password: "wrongpass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(LoginInput{Email: "ghost@example.com", Password: "petals123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestParseUserJWTRejectsTampered(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, token, err := svc.Register(RegisterInput{Username: "tamper", Email: "tamper@example.com", Password: "petals123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.ParseUserJWT(token + "x"); err == nil {
		t.Fatalf("expected error for tampered token")
	}
	if _, err := svc.ParseUserJWT("not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
