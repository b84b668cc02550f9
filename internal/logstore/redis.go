package logstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"agentboard/internal/types"
)

const (
	// terminalKeyPrefix namespaces the per-task terminal feed lists.
	terminalKeyPrefix = "agentboard.terminal."
	// terminalKeep bounds the feed length the agents maintain.
	terminalKeep = 1000
	// terminalTTL expires stale feeds.
	terminalTTL = time.Hour
)

// Reader fetches the ordered terminal feed for a task. The api package
// depends on this interface so tests can substitute a fake feed.
type Reader interface {
	Logs(ctx context.Context, taskID string) ([]types.LogEntry, error)
}

// Client reads and appends per-task terminal feeds in Redis.
type Client struct {
	rdb *redis.Client
}

// Connect dials Redis and verifies connectivity, retrying with
// exponential backoff so the dashboard survives Redis coming up late.
func Connect(ctx context.Context, addr string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &Client{rdb: rdb}, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping reports whether the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Logs returns the full terminal feed for a task in the order the
// agents pushed it. Elements that do not decode as structured entries
// degrade to plain info messages instead of failing the read; an
// unknown task id yields an empty feed.
func (c *Client) Logs(ctx context.Context, taskID string) ([]types.LogEntry, error) {
	raw, err := c.rdb.LRange(ctx, terminalKey(taskID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read terminal feed for %s: %w", taskID, err)
	}

	entries := make([]types.LogEntry, 0, len(raw))
	for _, element := range raw {
		entries = append(entries, types.NormalizeLogEntry(element, time.Now()))
	}

	return entries, nil
}

// Append pushes one structured entry onto the task's feed, trimming it
// to the last terminalKeep elements and refreshing the TTL, matching
// what the agents themselves do.
func (c *Client) Append(ctx context.Context, taskID, level, message string) error {
	entry, err := json.Marshal(types.LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   message,
	})
	if err != nil {
		return err
	}

	key := terminalKey(taskID)
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, key, entry)
	pipe.LTrim(ctx, key, -terminalKeep, -1)
	pipe.Expire(ctx, key, terminalTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append to terminal feed for %s: %w", taskID, err)
	}

	return nil
}

func terminalKey(taskID string) string {
	return terminalKeyPrefix + taskID
}
