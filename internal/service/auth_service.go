package service

import (
	"errors"
	"strings"
	"time"

	"github.com/bloomery-shop/internal/config"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput 注册输入
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string
	Password string
}

// UserJWTClaims 用户 JWT 载荷
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService 用户认证服务
type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

// Register 注册新用户
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if username == "" || email == "" || !strings.Contains(email, "@") {
		return nil, "", ErrInvalidParams
	}
	if err := s.validatePassword(input.Password); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUsernameExists
	}
	existing, err = s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         "customer",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, _, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 用户登录
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, "", ErrInvalidParams
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.Update(user.ID, map[string]interface{}{"last_login_at": now}); err == nil {
		user.LastLoginAt = &now
	}

	token, _, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile 获取用户资料
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新用户资料
func (s *AuthService) UpdateProfile(userID uint, firstName, lastName, phone string) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"first_name": strings.TrimSpace(firstName),
		"last_name":  strings.TrimSpace(lastName),
		"phone":      strings.TrimSpace(phone),
	}
	if err := s.userRepo.Update(user.ID, updates); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// GenerateUserJWT 签发用户 JWT Token
func (s *AuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := &UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token（仅允许 HS256）
func (s *AuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

func (s *AuthService) validatePassword(password string) error {
	policy := s.cfg.Security.PasswordPolicy
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 6
	}
	if len(password) < minLength {
		return ErrPasswordTooWeak
	}
	if policy.RequireUpper && !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return ErrPasswordTooWeak
	}
	if policy.RequireLower && !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		return ErrPasswordTooWeak
	}
	if policy.RequireNumber && !strings.ContainsAny(password, "0123456789") {
		return ErrPasswordTooWeak
	}
	return nil
}
