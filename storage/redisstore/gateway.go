// Package redisstore keeps every container as a Redis string under a prefixed key.
package redisstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/tuition/core/record"
)

type (
	Options struct {
		Addr      string
		Password  string
		DB        int
		KeyPrefix string // eg: "tuition:"
	}

	Gateway struct {
		client *redis.Client
		prefix string
	}
)

var _ record.Gateway = (*Gateway)(nil) // interface compliance check

// Open connects to Redis and checks the connection.
func Open(ctx context.Context, opts Options) (*Gateway, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "pinging redis at %s", opts.Addr)
	}
	return New(client, opts.KeyPrefix), nil
}

func New(client *redis.Client, prefix string) *Gateway {
	return &Gateway{client: client, prefix: prefix}
}

func (gw *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := gw.client.Get(ctx, gw.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting %s", key)
	}
	return data, nil
}

func (gw *Gateway) Save(ctx context.Context, key string, data []byte) error {
	return errors.Wrapf(gw.client.Set(ctx, gw.prefix+key, data, 0).Err(), "setting %s", key)
}

// Delete removes the blob stored under key, if any.
func (gw *Gateway) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(gw.client.Del(ctx, gw.prefix+key).Err(), "deleting %s", key)
}

func (gw *Gateway) Close() error {
	return gw.client.Close()
}
