package service

import (
	"sync"

	"drinkmeter/config"
	"drinkmeter/models"
)

// snapshotCache is a bounded id-keyed cache of row snapshots. Values are
// stored by copy so cached snapshots cannot alias rows handed to callers.
// Eviction is FIFO: once full, the oldest entry makes room for a new key.
type snapshotCache[V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[int64]V
	order    []int64
}

func newSnapshotCache[V any](capacity int) *snapshotCache[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &snapshotCache[V]{
		capacity: capacity,
		entries:  make(map[int64]V, capacity),
	}
}

func (c *snapshotCache[V]) get(key int64) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	return v, ok
}

func (c *snapshotCache[V]) put(key int64, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = value
}

func (c *snapshotCache[V]) invalidate(key int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *snapshotCache[V]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// CacheSet owns the user and group snapshot caches shared by the services.
// In strong mode every lookup misses and every store is a no-op, so all
// reads reach storage.
type CacheSet struct {
	mode   config.CacheMode
	users  *snapshotCache[models.User]
	groups *snapshotCache[models.Group]
}

// NewCacheSet creates the shared caches for the configured mode and capacity
func NewCacheSet(cfg *config.Config) *CacheSet {
	return &CacheSet{
		mode:   cfg.CacheMode,
		users:  newSnapshotCache[models.User](cfg.CacheCapacity),
		groups: newSnapshotCache[models.Group](cfg.CacheCapacity),
	}
}

func (s *CacheSet) getUser(userID int64) (*models.User, bool) {
	if s.mode == config.CacheModeStrong {
		return nil, false
	}
	user, ok := s.users.get(userID)
	if !ok {
		return nil, false
	}
	return &user, true
}

func (s *CacheSet) putUser(user *models.User) {
	if s.mode == config.CacheModeStrong || user == nil {
		return
	}
	s.users.put(user.UserID, *user)
}

func (s *CacheSet) invalidateUser(userID int64) {
	s.users.invalidate(userID)
}

func (s *CacheSet) getGroup(groupID int64) (*models.Group, bool) {
	if s.mode == config.CacheModeStrong {
		return nil, false
	}
	group, ok := s.groups.get(groupID)
	if !ok {
		return nil, false
	}
	return &group, true
}

func (s *CacheSet) putGroup(group *models.Group) {
	if s.mode == config.CacheModeStrong || group == nil {
		return
	}
	s.groups.put(group.GroupID, *group)
}

func (s *CacheSet) invalidateGroup(groupID int64) {
	s.groups.invalidate(groupID)
}
