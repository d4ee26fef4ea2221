package apimiddleware

import (
	"sync"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
)

// APIKeyCache remembers users by api key so each request doesn't hit the
// database.
type APIKeyCache struct {
	mu       sync.RWMutex
	cache    map[string]*aemodel.User
	userStor stor.UserStor
}

func NewAPIKeyCache(userStor stor.UserStor) *APIKeyCache {
	return &APIKeyCache{
		cache:    make(map[string]*aemodel.User),
		userStor: userStor,
	}
}

func (c *APIKeyCache) GetUserByAPIKey(apikey string) (*aemodel.User, error) {
	c.mu.RLock()
	user, ok := c.cache[apikey]
	c.mu.RUnlock()
	if ok {
		return user, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another request may have loaded it while we waited for the write lock.
	if user, ok := c.cache[apikey]; ok {
		return user, nil
	}

	user, err := c.userStor.GetUserByAPIToken(apikey)
	if err != nil {
		return nil, err
	}

	c.cache[apikey] = user
	return user, nil
}

func (c *APIKeyCache) DeleteUserByAPIKey(apikey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, apikey)
}
