package model

import (
	"strings"
	"testing"
)

// TestImportModels_CreateAndUpdate 测试自然键的创建与更新路径
func TestImportModels_CreateAndUpdate(t *testing.T) {
	svc, db := setupService(t)
	seedVendor(t, db, "OpenAI")

	price := "token"
	result, err := svc.ImportModels(&BulkImportRequest{Items: []BulkModelItem{
		{VendorName: "OpenAI", Model: "GPT-4o", VendorModelID: "gpt-4o", PriceModel: &price},
	}})
	if err != nil {
		t.Fatalf("ImportModels() failed: %v", err)
	}
	if result.Created != 1 || result.Updated != 0 || len(result.Errors) != 0 {
		t.Fatalf("ImportModels() first pass = %+v", result)
	}

	// 同一自然键再次导入走更新路径（标识大小写不敏感）
	desc := "refreshed"
	result, err = svc.ImportModels(&BulkImportRequest{Items: []BulkModelItem{
		{VendorName: "OpenAI", Model: "GPT-4o", VendorModelID: "GPT-4O", Description: &desc},
	}})
	if err != nil {
		t.Fatalf("ImportModels() failed: %v", err)
	}
	if result.Created != 0 || result.Updated != 1 {
		t.Fatalf("ImportModels() second pass = %+v", result)
	}

	page, _ := svc.ListModels(SearchParams{})
	if page.Total != 1 {
		t.Errorf("ImportModels() should not duplicate, total = %d", page.Total)
	}
	if page.Items[0].Description != desc {
		t.Errorf("ImportModels() update did not apply, description = %q", page.Items[0].Description)
	}
}

// TestImportModels_RowIsolation 测试行级失败不影响批次
func TestImportModels_RowIsolation(t *testing.T) {
	svc, db := setupService(t)
	seedVendor(t, db, "OpenAI")

	result, err := svc.ImportModels(&BulkImportRequest{Items: []BulkModelItem{
		{VendorName: "OpenAI", Model: "GPT-4o", VendorModelID: "gpt-4o"},
		{VendorName: "", Model: "ghost"},
		{VendorName: "Nowhere", Model: "ghost"},
		{VendorName: "OpenAI", Model: ""},
		{VendorName: "OpenAI", Model: "GPT-4o mini", VendorModelID: "gpt-4o-mini"},
	}})
	if err != nil {
		t.Fatalf("ImportModels() failed: %v", err)
	}

	if result.Created != 2 {
		t.Errorf("ImportModels() created = %d, want 2", result.Created)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("ImportModels() errors = %v, want 3", result.Errors)
	}
	// 行号从 1 开始
	if !strings.Contains(result.Errors[0], "row 2") {
		t.Errorf("ImportModels() error should cite row 2, got %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "not found") {
		t.Errorf("ImportModels() unknown vendor error = %q", result.Errors[1])
	}
}

// TestImportModels_BatchDuplicate 测试批次内重复键被拒绝
func TestImportModels_BatchDuplicate(t *testing.T) {
	svc, db := setupService(t)
	seedVendor(t, db, "OpenAI")

	result, err := svc.ImportModels(&BulkImportRequest{Items: []BulkModelItem{
		{VendorName: "OpenAI", Model: "GPT-4o", VendorModelID: "gpt-4o"},
		{VendorName: " openai ", Model: "GPT-4o", VendorModelID: " GPT-4O "},
	}})
	if err != nil {
		t.Fatalf("ImportModels() failed: %v", err)
	}

	if result.Created != 1 {
		t.Errorf("ImportModels() created = %d, want 1", result.Created)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "duplicate") {
		t.Errorf("ImportModels() errors = %v, want duplicate entry", result.Errors)
	}
}

// TestImportModels_ModelIDFallback 测试缺省标识以模型名充当
func TestImportModels_ModelIDFallback(t *testing.T) {
	svc, db := setupService(t)
	seedVendor(t, db, "OpenAI")

	items := []BulkModelItem{{VendorName: "OpenAI", Model: "GPT-4o"}}

	first, _ := svc.ImportModels(&BulkImportRequest{Items: items})
	second, _ := svc.ImportModels(&BulkImportRequest{Items: items})

	if first.Created != 1 {
		t.Errorf("ImportModels() first created = %d, want 1", first.Created)
	}
	if second.Updated != 1 || second.Created != 0 {
		t.Errorf("ImportModels() repeat should update, got %+v", second)
	}
}
