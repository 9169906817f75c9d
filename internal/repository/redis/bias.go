package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

func biasKey(size int) string { return "bias:" + strconv.Itoa(size) }

// LoadBias returns the stored grid for size, or nil if the key is absent.
func (c *Client) LoadBias(ctx context.Context, size int) ([][]int, error) {
	data, err := c.rdb.Get(ctx, biasKey(size)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bias: %w", err)
	}
	var grid [][]int
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, fmt.Errorf("decode bias: %w", err)
	}
	return grid, nil
}

// SaveBias overwrites the grid for size.
func (c *Client) SaveBias(ctx context.Context, size int, grid [][]int) error {
	data, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("encode bias: %w", err)
	}
	if err := c.rdb.Set(ctx, biasKey(size), data, 0).Err(); err != nil {
		return fmt.Errorf("set bias: %w", err)
	}
	return nil
}
