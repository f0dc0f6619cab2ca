package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/modelpricehub/ModelPriceHub-API/internal/api"
	"github.com/modelpricehub/ModelPriceHub-API/internal/config"
	"github.com/modelpricehub/ModelPriceHub-API/internal/db"
	"github.com/modelpricehub/ModelPriceHub-API/internal/storage"
)

const (
	// Version 项目版本
	Version = "0.1.0"
	// AppName 应用名称
	AppName = "ModelPriceHub-API"
)

func main() {
	log.Printf("=== %s v%s ===\n", AppName, Version)
	log.Println("AI 模型价格目录服务")

	// 加载配置
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("❌ 加载配置失败: %v", err)
	}

	// 初始化数据库
	database, err := db.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("❌ 初始化数据库失败: %v", err)
	}
	defer func() {
		if err := db.CloseDatabase(database); err != nil {
			log.Printf("关闭数据库失败: %v", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(database); err != nil {
			log.Fatalf("❌ 数据库迁移失败: %v", err)
		}
	}

	// 初始化对象存储（未配置时上传接口返回 503）
	presigner, err := storage.NewPresigner(context.Background(), &cfg.Storage)
	if err != nil {
		log.Fatalf("❌ 初始化对象存储失败: %v", err)
	}

	router := api.SetupRouter(database, cfg, presigner)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("🚀 服务启动: http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("❌ 服务启动失败: %v", err)
	}
}
