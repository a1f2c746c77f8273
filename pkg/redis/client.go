package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client 封裝 go-redis 客戶端實例
type Client struct {
	rdb *redis.Client
}

// NewClient 建立並回傳一個新的 Redis 客戶端實例
//
// 參數:
//
//	cfg: Config - Redis 連線配置
//
// 回傳值:
//
//	*Client: 封裝後的 Redis 客戶端
//	error: 若連線失敗則回傳錯誤
func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Retry mechanism for redis connection
	maxRetries := 10
	retryInterval := 2 * time.Second

	var err error
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			fmt.Printf("Failed to connect to Redis (attempt %d/%d): %v. Retrying in %v...\n", i+1, maxRetries, err, retryInterval)
			time.Sleep(retryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, err)
	}

	return &Client{rdb: rdb}, nil
}

// RDB 回傳底層的 *redis.Client 實例
func (c *Client) RDB() *redis.Client {
	return c.rdb
}

// Close 關閉連線
func (c *Client) Close() error {
	return c.rdb.Close()
}
