package kvstore_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"moneyflow/internal/config"
	"moneyflow/pkg/kvstore"
)

var Module = fx.Provide(provideStore)

func provideStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (kvstore.Store, error) {
	if cfg.KVStore.Path == "" {
		log.Warn("KV_STORE_PATH not set, chat history and preferences are kept in memory")
		return kvstore.NewMemoryStore(), nil
	}

	store, err := kvstore.OpenSQLite(cfg.KVStore.Path)
	if err != nil {
		return nil, err
	}
	log.Info("kv store opened", zap.String("path", cfg.KVStore.Path))
	lc.Append(fx.StopHook(store.Close))
	return store, nil
}
