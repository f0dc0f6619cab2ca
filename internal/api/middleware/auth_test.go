package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelpricehub/ModelPriceHub-API/internal/auth"
	"github.com/modelpricehub/ModelPriceHub-API/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *auth.Service) {
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	svc := auth.NewService(&config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		JWTSecret:         "middleware-secret",
		TokenTTL:          time.Hour,
	})

	router := gin.New()
	router.GET("/protected", AdminAuthMiddleware(svc), func(c *gin.Context) {
		user, _ := c.Get("admin_user")
		c.JSON(http.StatusOK, gin.H{"user": user})
	})
	return router, svc
}

// TestAdminAuthMiddleware_MissingHeader 测试缺少认证头
func TestAdminAuthMiddleware_MissingHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

// TestAdminAuthMiddleware_BadFormat 测试非法认证头格式
func TestAdminAuthMiddleware_BadFormat(t *testing.T) {
	router, _ := setupAuthRouter(t)

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401 for header %q, got %d", header, resp.Code)
		}
	}
}

// TestAdminAuthMiddleware_ValidToken 测试有效令牌放行并注入身份
func TestAdminAuthMiddleware_ValidToken(t *testing.T) {
	router, svc := setupAuthRouter(t)

	token, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if body := resp.Body.String(); !strings.Contains(body, "admin") {
		t.Errorf("Expected admin identity in response, got %s", body)
	}
}
