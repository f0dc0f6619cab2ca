package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/modelpricehub/ModelPriceHub-API/internal/model"
	"github.com/modelpricehub/ModelPriceHub-API/internal/models"
	"github.com/modelpricehub/ModelPriceHub-API/internal/vendor"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupModelRouter 创建测试处理器和路由
func setupModelRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Vendor{}, &models.Model{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	handler := NewModelHandler(model.NewService(model.NewRepository(db), vendor.NewRepository(db)))

	router := gin.New()
	group := router.Group("/api/admin/models")
	{
		group.GET("", handler.ListModels)
		group.POST("", handler.CreateModel)
		group.GET("/export", handler.ExportModels)
		group.POST("/import", handler.ImportModels)
		group.GET("/:id", handler.GetModel)
		group.PUT("/:id", handler.UpdateModel)
		group.DELETE("/:id", handler.DeleteModel)
	}

	return router, db
}

// TestCreateModel_Success 测试创建模型并解码响应
func TestCreateModel_Success(t *testing.T) {
	router, db := setupModelRouter(t)

	v := models.Vendor{Name: "OpenAI", Status: models.VendorStatusEnabled}
	db.Create(&v)

	payload := fmt.Sprintf(`{
		"vendor_id": %d,
		"model": "GPT-4o",
		"vendor_model_id": "gpt-4o",
		"modelCapability": ["vision", "tools"],
		"priceModel": "token",
		"priceCurrency": "USD",
		"priceData": {"base": {"input_token_1m": 2.5, "output_token_1m": 10}},
		"releaseDate": "2024-05-13"
	}`, v.ID)

	req, _ := http.NewRequest("POST", "/api/admin/models", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &response)

	caps, _ := response["modelCapability"].([]interface{})
	if len(caps) != 2 {
		t.Errorf("Expected decoded capabilities, got %v", response["modelCapability"])
	}
	if response["releaseDate"] != "2024-05-13" {
		t.Errorf("Expected releaseDate 2024-05-13, got %v", response["releaseDate"])
	}
	vendorInfo, _ := response["vendor"].(map[string]interface{})
	if vendorInfo["name"] != "OpenAI" {
		t.Errorf("Expected embedded vendor summary, got %v", response["vendor"])
	}
}

// TestCreateModel_UnknownVendor 测试引用不存在的供应商
func TestCreateModel_UnknownVendor(t *testing.T) {
	router, _ := setupModelRouter(t)

	req, _ := http.NewRequest("POST", "/api/admin/models",
		bytes.NewBufferString(`{"vendor_id": 9999, "model": "ghost"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

// TestListModels_FilterAndPaginate 测试查询参数绑定
func TestListModels_FilterAndPaginate(t *testing.T) {
	router, db := setupModelRouter(t)

	v := models.Vendor{Name: "OpenAI", Status: models.VendorStatusEnabled}
	db.Create(&v)
	for i := 0; i < 3; i++ {
		db.Create(&models.Model{
			VendorID: v.ID, Model: fmt.Sprintf("gpt-%d", i),
			Status: models.ModelStatusEnabled,
		})
	}
	db.Create(&models.Model{VendorID: v.ID, Model: "legacy", Status: models.ModelStatusOutdated})

	req, _ := http.NewRequest("GET", "/api/admin/models?status=enabled&page=1&page_size=2", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var page model.PaginatedModels
	json.Unmarshal(resp.Body.Bytes(), &page)
	if page.Total != 3 {
		t.Errorf("Expected total 3, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Errorf("Expected 2 items on page, got %d", len(page.Items))
	}

	// 非法状态值被绑定校验拒绝
	req, _ = http.NewRequest("GET", "/api/admin/models?status=bogus", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad status, got %d", resp.Code)
	}
}

// TestUpdateModel_Partial 测试部分更新
func TestUpdateModel_Partial(t *testing.T) {
	router, db := setupModelRouter(t)

	v := models.Vendor{Name: "OpenAI", Status: models.VendorStatusEnabled}
	db.Create(&v)
	m := models.Model{
		VendorID: v.ID, Model: "GPT-4o", Description: "keep me",
		Status: models.ModelStatusEnabled,
	}
	db.Create(&m)

	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/admin/models/%d", m.ID),
		bytes.NewBufferString(`{"note": "updated"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response model.ModelResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Note != "updated" {
		t.Errorf("Expected note updated, got %q", response.Note)
	}
	if response.Description != "keep me" {
		t.Errorf("Expected description preserved, got %q", response.Description)
	}
}

// TestImportExport_RoundTrip 测试批量导入与导出
func TestImportExport_RoundTrip(t *testing.T) {
	router, db := setupModelRouter(t)

	db.Create(&models.Vendor{Name: "OpenAI", Status: models.VendorStatusEnabled})

	payload := `{"items": [
		{"vendorName": "OpenAI", "model": "GPT-4o", "vendorModelId": "gpt-4o", "priceModel": "token"},
		{"vendorName": "Nowhere", "model": "ghost"}
	]}`
	req, _ := http.NewRequest("POST", "/api/admin/models/import", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result model.BulkImportResult
	json.Unmarshal(resp.Body.Bytes(), &result)
	if result.Created != 1 || len(result.Errors) != 1 {
		t.Errorf("Import result = %+v, want 1 created, 1 error", result)
	}

	// 导出包含刚导入的条目
	req, _ = http.NewRequest("GET", "/api/admin/models/export", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	// 导出是裸数组，形状即导入请求的 items 字段
	var exported []model.BulkModelItem
	json.Unmarshal(resp.Body.Bytes(), &exported)
	if len(exported) != 1 || exported[0].VendorName != "OpenAI" {
		t.Errorf("Export items = %+v", exported)
	}
}
