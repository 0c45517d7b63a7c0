package dashboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/pkg"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// Cache keeps serialized summaries per user and day. Entries expire after ttl.
type Cache struct {
	cache          *freecache.Cache
	expireSeconds  int
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewCache(sizeMB int, ttl time.Duration, metricsManager *metrics.Manager) *Cache {
	expireSeconds := int(ttl.Seconds())
	if expireSeconds < 1 {
		expireSeconds = 1
	}
	return &Cache{
		cache:          freecache.NewCache(sizeMB * megabyte),
		expireSeconds:  expireSeconds,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func cacheKey(userID int, day time.Time) []byte {
	return []byte(fmt.Sprintf("dashboard::%d::%s", userID, day.Format(pkg.DayLayout)))
}

func (c *Cache) Get(userID int, day time.Time) (*Summary, bool) {
	summaryBytes, err := c.cache.Get(cacheKey(userID, day))
	if err != nil {
		c.count("miss")
		return nil, false
	}

	summary := &Summary{}
	if err := json.Unmarshal(summaryBytes, summary); err != nil {
		log.Errorf("dashboard cache, unmarshal summary for user %d: %s", userID, err)
		c.count("miss")
		return nil, false
	}

	c.count("hit")
	return summary, true
}

func (c *Cache) Set(userID int, day time.Time, summary *Summary) {
	summaryBytes, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("dashboard cache, marshal summary for user %d: %s", userID, err)
		return
	}
	if err := c.cache.Set(cacheKey(userID, day), summaryBytes, c.expireSeconds); err != nil {
		log.Errorf("dashboard cache, set summary for user %d: %s", userID, err)
	}
}

// Invalidate drops the user's summary for the current day.
func (c *Cache) Invalidate(userID int) {
	if c.cache.Del(cacheKey(userID, pkg.Day(c.now().UTC()))) {
		log.Tracef("dashboard cache, invalidated summary for user %d", userID)
	}
}

func (c *Cache) count(result string) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.CounterDashboardCache.WithLabelValues(result).Inc()
}
