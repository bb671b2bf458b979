package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for pkg/xredis.Client.
type MockRedisClient struct {
	zsets  map[string]map[string]float64
	hashes map[string]map[string]string
	kv     map[string]string
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		zsets:  map[string]map[string]float64{},
		hashes: map[string]map[string]string{},
		kv:     map[string]string{},
	}
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if _, ok := c.zsets[key]; ok {
		return true, nil
	}
	if _, ok := c.hashes[key]; ok {
		return true, nil
	}
	_, ok := c.kv[key]
	return ok, nil
}

func (c *MockRedisClient) Del(ctx context.Context, key ...string) error {
	for _, k := range key {
		delete(c.zsets, k)
		delete(c.hashes, k)
		delete(c.kv, k)
	}
	return nil
}

func (c *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	if _, ok := c.zsets[key]; !ok {
		c.zsets[key] = map[string]float64{}
	}
	c.zsets[key][z.Member.(string)] = z.Score
	return nil
}

func (c *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	members := make([]redis.Z, 0, len(c.zsets[key]))
	for member, score := range c.zsets[key] {
		members = append(members, redis.Z{Member: member, Score: score})
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}
		return members[i].Member.(string) > members[j].Member.(string)
	})

	if offset >= len(members) {
		return nil, nil
	}

	end := offset + limit
	if end > len(members) {
		end = len(members)
	}

	return members[offset:end], nil
}

func (c *MockRedisClient) ZCard(ctx context.Context, key string) (uint64, error) {
	return uint64(len(c.zsets[key])), nil
}

func (c *MockRedisClient) HSet(ctx context.Context, key string, values ...any) error {
	if len(values)%2 != 0 {
		return errors.New("odd number of hash values")
	}
	if _, ok := c.hashes[key]; !ok {
		c.hashes[key] = map[string]string{}
	}
	for i := 0; i < len(values); i += 2 {
		c.hashes[key][values[i].(string)] = values[i+1].(string)
	}
	return nil
}

func (c *MockRedisClient) HGet(ctx context.Context, key, field string) (string, error) {
	v, ok := c.hashes[key][field]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *MockRedisClient) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	result := map[string]string{}
	for k, v := range c.hashes[key] {
		result[k] = v
	}
	return result, nil
}

func (c *MockRedisClient) Set(ctx context.Context, key, value string) error {
	c.kv[key] = value
	return nil
}

func (c *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.kv[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	c.kv[key] = string(b)
	return nil
}

func (c *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	s, ok := c.kv[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal([]byte(s), v)
}
