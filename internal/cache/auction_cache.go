// Package cache keeps short-lived copies of hot Firestore reads in Redis.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yourusername/estate-service/internal/models"
)

const activeAuctionsKey = "auctions:active"

// AuctionCache stores the Active auction list. A nil *AuctionCache (Redis
// not configured) is a valid cache that never hits.
type AuctionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAuctionCache(client *redis.Client, ttl time.Duration) *AuctionCache {
	if client == nil {
		return nil
	}
	return &AuctionCache{client: client, ttl: ttl}
}

func (c *AuctionCache) GetActive(ctx context.Context) ([]*models.Auction, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, activeAuctionsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("auction cache get: %v", err)
		return nil, false
	}

	var auctions []*models.Auction
	if err := json.Unmarshal(data, &auctions); err != nil {
		log.Printf("auction cache decode: %v", err)
		return nil, false
	}
	return auctions, true
}

func (c *AuctionCache) SetActive(ctx context.Context, auctions []*models.Auction) {
	if c == nil {
		return
	}
	data, err := json.Marshal(auctions)
	if err != nil {
		log.Printf("auction cache encode: %v", err)
		return
	}
	if err := c.client.Set(ctx, activeAuctionsKey, data, c.ttl).Err(); err != nil {
		log.Printf("auction cache set: %v", err)
	}
}

// Invalidate drops the cached list; called after every auction write
func (c *AuctionCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, activeAuctionsKey).Err(); err != nil {
		log.Printf("auction cache invalidate: %v", err)
	}
}
