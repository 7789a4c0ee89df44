package objectstore

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/openlodge/clubadmin/internal/config"
)

// Module wires the S3 store and ensures the bucket on start.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (Store, *MinioStore, error) {
	store, err := NewMinioStore(Options{
		Endpoint:  p.Config.S3Endpoint,
		AccessKey: p.Config.S3AccessKey,
		SecretKey: p.Config.S3SecretKey,
		Bucket:    p.Config.S3Bucket,
		UseSSL:    p.Config.S3UseSSL,
	}, p.Logger)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}

func registerLifecycle(lc fx.Lifecycle, store *MinioStore) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.EnsureBucket(ctx)
		},
	})
}
