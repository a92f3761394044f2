package main

import (
	"github.com/nadiag01/apre/config"
	"github.com/nadiag01/apre/internal/global"
	"github.com/nadiag01/apre/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {
	log := logger.GetAppLogger()

	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		log.Fatalf("Failed to initialize collections: %v", err)
	}
	log.Info("Initialized collection registry")
}

// InitCollections đăng ký các collections MongoDB vào registry
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	log := logger.WithModule("registry")

	for _, name := range global.MongoDB_ColNames.Names() {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			log.WithError(err).Errorf("Failed to register collection %s", name)
			return err
		}

		if registered {
			log.Debugf("Collection %s registered successfully", name)
		} else {
			log.Warnf("Collection %s already registered", name)
		}
	}

	return nil
}

// mustCollection lấy collection đã đăng ký, dừng chương trình nếu thiếu
func mustCollection(name string) *mongo.Collection {
	col, err := global.RegistryCollections.MustGet(name)
	if err != nil {
		logger.GetAppLogger().Fatalf("Collection %s is not registered: %v", name, err)
	}
	return col
}
