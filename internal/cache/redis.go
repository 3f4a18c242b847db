package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"tasktrack/internal/config"
	"tasktrack/internal/models"
	"tasktrack/pkg/logger"
)

const userTasksPrefix = "tasks:user:"

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client (initialized on first use).
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err, "url", cfg.RedisURL)
			return
		}
		opts.PoolSize = cfg.RedisPoolSize
		client = redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error(ctx, "Redis ping failed", "error", err)
			return
		}
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize)
	})
	return client
}

// GetUserTasks reads a user's task list from Redis. Returns (nil, false) on
// miss or any error; the caller falls back to the database.
func GetUserTasks(ctx context.Context, userID string) ([]models.Task, bool) {
	c := Client(ctx)
	if c == nil {
		return nil, false
	}
	b, err := c.Get(ctx, userTasksPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get user tasks failed", "error", err)
		return nil, false
	}
	var tasks []models.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		logger.Debug(ctx, "Redis unmarshal user tasks failed", "error", err)
		return nil, false
	}
	return tasks, true
}

// SetUserTasks writes a user's task list to Redis with the configured TTL.
// Best-effort; failures are logged and ignored.
func SetUserTasks(ctx context.Context, userID string, tasks []models.Task) {
	c := Client(ctx)
	if c == nil {
		return
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		logger.Debug(ctx, "Marshal user tasks for cache failed", "error", err)
		return
	}
	ttl := time.Duration(config.Get().CacheTTL) * time.Second
	if err := c.Set(ctx, userTasksPrefix+userID, b, ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis set user tasks failed", "error", err)
	}
}

// InvalidateUserTasks deletes a user's cached task list so the next read
// goes to the database. Called after every task mutation.
func InvalidateUserTasks(ctx context.Context, userID string) {
	c := Client(ctx)
	if c == nil {
		return
	}
	if err := c.Del(ctx, userTasksPrefix+userID).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate user tasks failed", "error", err)
	}
}
