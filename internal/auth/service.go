package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/modelpricehub/ModelPriceHub-API/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken 令牌无效或已过期
	ErrInvalidToken = errors.New("invalid token")
)

// Claims 管理端访问令牌的声明
// Type 固定为 access，区别于将来可能引入的刷新令牌
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Service 管理端认证服务
type Service struct {
	cfg *config.AuthConfig
	now func() time.Time
}

// NewService 创建 Service 实例
func NewService(cfg *config.AuthConfig) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// Login 校验管理员凭证并签发访问令牌
func (s *Service) Login(username, password string) (string, error) {
	if username != s.cfg.AdminUsername {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate 解析并校验访问令牌，返回管理员用户名
func (s *Service) Validate(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Type != "access" || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
