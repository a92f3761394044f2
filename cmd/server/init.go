package main

import (
	"context"
	"time"

	"github.com/nadiag01/apre/config"
	reportmodels "github.com/nadiag01/apre/internal/api/report/models"
	usermodels "github.com/nadiag01/apre/internal/api/user/models"
	"github.com/nadiag01/apre/internal/database"
	"github.com/nadiag01/apre/internal/global"
	"github.com/nadiag01/apre/internal/logger"
)

// InitGlobal khởi tạo cấu hình, validator và kết nối database
func InitGlobal() {
	initConfig()
	initValidator()
	initDatabase_MongoDB()
}

// Hàm khởi tạo validator
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logger.GetAppLogger().Fatal("Failed to initialize config: config is nil")
	}

	cfg := global.MongoDB_ServerConfig
	global.MongoDB_ColNames = global.MongoDB_CollectionName{
		Sales:            cfg.MongoDB_ColSales,
		AgentPerformance: cfg.MongoDB_ColAgentPerf,
		Users:            cfg.MongoDB_ColUsers,
	}
	logger.GetAppLogger().Info("Initialized server config")
}

// Hàm khởi tạo kết nối database, collections và index
func initDatabase_MongoDB() {
	log := logger.GetAppLogger()

	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	if err := database.EnsureCollections(ctx, db, global.MongoDB_ColNames.Names()); err != nil {
		log.Fatalf("Failed to ensure collections: %v", err)
	}
	log.Info("Ensured database and collections")

	indexed := []struct {
		name  string
		model any
	}{
		{global.MongoDB_ColNames.Sales, reportmodels.Sale{}},
		{global.MongoDB_ColNames.AgentPerformance, reportmodels.AgentPerformance{}},
		{global.MongoDB_ColNames.Users, usermodels.User{}},
	}
	for _, item := range indexed {
		// Lỗi index không chặn khởi động, chỉ ảnh hưởng hiệu năng
		if err := database.CreateIndexes(ctx, db.Collection(item.name), item.model); err != nil {
			log.WithError(err).WithField("collection", item.name).Warn("Failed to create indexes")
		}
	}
}
