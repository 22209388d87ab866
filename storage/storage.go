// Package storage opens the record.Gateway selected by the configuration.
package storage

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/storage/filestore"
	"github.com/trezcool/tuition/storage/inmem"
	"github.com/trezcool/tuition/storage/redisstore"
	"github.com/trezcool/tuition/storage/sqlkv"
)

// Gateway is a record.Gateway holding resources to release.
type Gateway interface {
	record.Gateway
	io.Closer
}

func Open(ctx context.Context, conf *core.Config) (Gateway, error) {
	sc := conf.Storage
	switch sc.Driver {
	case core.DriverMemory:
		return inmem.NewGateway(), nil
	case core.DriverFile, "":
		gw, err := filestore.Open(sc.Dir)
		if err != nil {
			return nil, err
		}
		return gw, nil
	case core.DriverSQLite:
		gw, err := sqlkv.OpenSQLite(sc.SQLitePath)
		if err != nil {
			return nil, err
		}
		return gw, nil
	case core.DriverPostgres:
		gw, err := sqlkv.OpenPostgres(sc.PostgresURL)
		if err != nil {
			return nil, err
		}
		return gw, nil
	case core.DriverRedis:
		gw, err := redisstore.Open(ctx, redisstore.Options{
			Addr:      sc.RedisAddr,
			Password:  sc.RedisPassword,
			DB:        sc.RedisDB,
			KeyPrefix: sc.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		return gw, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", sc.Driver)
	}
}
