package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/admin/astro-services/natal-api/internal/ports/cache"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Cache in-memory реализация cache.Cache, используется когда Redis не настроен.
// Протухшие записи удаляются лениво при чтении.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewCache создаёт новый in-memory кэш
func NewCache() cache.Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

// Get получает значение по ключу
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("key not found: %s", key)
	}

	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", fmt.Errorf("key not found: %s", key)
	}

	return e.value, nil
}

// Set устанавливает значение с TTL (ttl <= 0 - без истечения)
func (c *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// Delete удаляет значение по ключу
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Exists проверяет существование ключа
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.Get(ctx, key)
	return err == nil, nil
}

func (c *Cache) Close() error {
	return nil
}
