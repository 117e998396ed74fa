package model

import (
	"os"
	"path/filepath"

	"tribute-wall/backend/common"

	"github.com/burugo/thing"
	redisCache "github.com/burugo/thing/drivers/cache/redis"
	"github.com/burugo/thing/drivers/db/sqlite"
)

func InitDB() (err error) {
	if dir := filepath.Dir(common.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	dbAdapter, err := sqlite.NewSQLiteAdapter(common.SQLitePath)
	if err != nil {
		return err
	}
	var cacheClient thing.CacheClient = nil
	if common.RedisEnabled && common.RDB != nil {
		cacheClient, err = redisCache.NewClient(common.RDB, nil)
		if err != nil {
			return err
		}
	}
	thing.Configure(dbAdapter, cacheClient)

	err = thing.AutoMigrate(&Tribute{})
	if err != nil {
		return err
	}

	return TributeInit()
}

func CloseDB() error {
	// Thing ORM does not require an explicit close.
	return nil
}
