package utils

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/mmdatafocus/storefront_backend/config"
)

func GetCacheLifespan() time.Duration {
	return time.Duration(config.IntFromEnv("CACHE_LIFESPAN", 1)) * time.Hour
}

func GetTypeName[T any]() string {
	var v T
	return reflect.TypeOf(v).Name()
}

func redisKey[T any](id int) string {
	return GetTypeName[T]() + ":" + fmt.Sprint(id)
}

// store instance under Type:id
func StoreRedis[T any](ctx context.Context, obj *T, id int) error {
	return config.SetRedisObject(ctx, redisKey[T](id), obj, GetCacheLifespan())
}

// returns nil if does not exist
func RetrieveRedis[T any](ctx context.Context, id int) (*T, error) {
	var result T
	exists, err := config.GetRedisObject(ctx, redisKey[T](id), &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return &result, nil
}

// GetResource reads Type:id from redis, falling back to load and caching the result.
// Redis errors are ignored; the loader is the source of truth.
func GetResource[T any](ctx context.Context, id int, load func(context.Context, int) (*T, error)) (*T, error) {
	if cached, err := RetrieveRedis[T](ctx, id); err == nil && cached != nil {
		return cached, nil
	}
	result, err := load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := StoreRedis[T](ctx, result, id); err != nil {
		config.LogError(config.GetLogger(), "redisHelper.go", "GetResource", "StoreRedis", GetTypeName[T](), err)
	}
	return result, nil
}
