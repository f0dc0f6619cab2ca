package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/modelpricehub/ModelPriceHub-API/internal/models"
	"github.com/modelpricehub/ModelPriceHub-API/internal/vendor"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupVendorRouter 创建测试处理器和路由
func setupVendorRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Vendor{}, &models.Model{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	handler := NewVendorHandler(vendor.NewService(vendor.NewRepository(db)))

	router := gin.New()
	vendors := router.Group("/api/admin/vendors")
	{
		vendors.POST("", handler.CreateVendor)
		vendors.GET("", handler.ListVendors)
		vendors.GET("/:id", handler.GetVendor)
		vendors.PUT("/:id", handler.UpdateVendor)
		vendors.DELETE("/:id", handler.DeleteVendor)
	}

	return router, db
}

// TestCreateVendor_Success 测试成功创建供应商
func TestCreateVendor_Success(t *testing.T) {
	router, _ := setupVendorRouter(t)

	body, _ := json.Marshal(vendor.CreateVendorRequest{
		Name: "OpenAI",
		URL:  "https://openai.com",
	})

	req, _ := http.NewRequest("POST", "/api/admin/vendors", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response vendor.VendorResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Name != "OpenAI" {
		t.Errorf("Expected name OpenAI, got %s", response.Name)
	}
	if response.Status != "enabled" {
		t.Errorf("Expected default status enabled, got %s", response.Status)
	}
}

// TestCreateVendor_Validation 测试请求校验
func TestCreateVendor_Validation(t *testing.T) {
	router, _ := setupVendorRouter(t)

	// 缺少必填的名称
	req, _ := http.NewRequest("POST", "/api/admin/vendors", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}

	// 非法 URL
	body, _ := json.Marshal(vendor.CreateVendorRequest{Name: "Bad", URL: "not-a-url"})
	req, _ = http.NewRequest("POST", "/api/admin/vendors", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid url, got %d", resp.Code)
	}
}

// TestGetVendor_NotFound 测试查询不存在的供应商
func TestGetVendor_NotFound(t *testing.T) {
	router, _ := setupVendorRouter(t)

	req, _ := http.NewRequest("GET", "/api/admin/vendors/9999", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

// TestDeleteVendor_Guarded 测试删除受模型引用保护
func TestDeleteVendor_Guarded(t *testing.T) {
	router, db := setupVendorRouter(t)

	v := models.Vendor{Name: "OpenAI", Status: models.VendorStatusEnabled}
	db.Create(&v)
	db.Create(&models.Model{VendorID: v.ID, Model: "gpt-4o", Status: models.ModelStatusEnabled})

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/admin/vendors/%d", v.ID), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}

	// 清除引用后删除返回 204
	db.Where("vendor_id = ?", v.ID).Delete(&models.Model{})
	resp = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/api/admin/vendors/%d", v.ID), nil)
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", resp.Code)
	}
}
