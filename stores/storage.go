package stores

import (
	"fmt"

	"github.com/Ranger10sam/Serenify-App/config"
	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/Ranger10sam/Serenify-App/stores/filesystem"
	"github.com/Ranger10sam/Serenify-App/stores/memory"
	"github.com/Ranger10sam/Serenify-App/stores/sqlite"
	"github.com/sirupsen/logrus"
)

const (
	TypeMemory     = "memory"
	TypeFilesystem = "filesystem"
	TypeSQLite     = "sqlite"
)

// GetStore builds the key-value backend selected by cfg.StorageType.
// An empty type selects the filesystem store; the in-memory store keeps
// nothing across runs and must be asked for explicitly.
func GetStore(cfg config.Config) (core.KeyValueStore, error) {
	var (
		store core.KeyValueStore
		err   error
	)

	storageField := logrus.Fields{
		"storageType": cfg.StorageType,
	}

	switch cfg.StorageType {
	case "", TypeFilesystem:
		storageField["storageType"] = TypeFilesystem
		storageField["basePath"] = cfg.LocalStoragePath
		store, err = filesystem.NewStore(cfg.LocalStoragePath)
	case TypeSQLite:
		storageField["dataSourceName"] = cfg.DataSourceName
		store, err = sqlite.NewStore(cfg.DataSourceName)
	case TypeMemory:
		store = memory.NewStore()
		storageField["storageType"] = "in-memory"
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", cfg.StorageType, err)
	}

	logrus.WithFields(storageField).Info("Use storage")
	return store, nil
}
