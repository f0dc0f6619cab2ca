package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/modelpricehub/ModelPriceHub-API/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T, password string) *config.AuthConfig {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
	}
}

// TestService_Login 测试凭证校验与令牌签发
func TestService_Login(t *testing.T) {
	svc := NewService(testConfig(t, "s3cret"))

	token, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}

	// 签发的令牌可被自身校验
	subject, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if subject != "admin" {
		t.Errorf("Validate() subject = %q, want admin", subject)
	}
}

// TestService_Login_BadCredentials 测试错误凭证
func TestService_Login_BadCredentials(t *testing.T) {
	svc := NewService(testConfig(t, "s3cret"))

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() wrong password should fail, got %v", err)
	}
	if _, err := svc.Login("root", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() wrong username should fail, got %v", err)
	}
}

// TestService_Validate_Rejections 测试令牌拒绝路径
func TestService_Validate_Rejections(t *testing.T) {
	svc := NewService(testConfig(t, "s3cret"))

	if _, err := svc.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() garbage should return ErrInvalidToken, got %v", err)
	}

	// 其他密钥签发的令牌被拒绝
	other := NewService(&config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: svc.cfg.AdminPasswordHash,
		JWTSecret:         "other-secret",
		TokenTTL:          time.Hour,
	})
	token, _ := other.Login("admin", "s3cret")
	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() foreign token should fail, got %v", err)
	}

	// 过期令牌被拒绝
	expired := NewService(testConfig(t, "s3cret"))
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _ = expired.Login("admin", "s3cret")
	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() expired token should fail, got %v", err)
	}
}
