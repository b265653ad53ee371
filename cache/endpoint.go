package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/utils"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

const bucketName = "endpoint_cache"

// Entry is one cached upstream response with its freshness metadata.
// Payload is opaque JSON, optionally gzip+base64 compressed.
type Entry struct {
	Source     string    `json:"source"`
	Endpoint   string    `json:"endpoint"`
	ParamsHash string    `json:"paramsHash"`
	CachedAt   time.Time `json:"cachedAt"`
	TTLSeconds int64     `json:"ttlSeconds"`
	Payload    string    `json:"payload"`
	Compressed bool      `json:"compressed"`
}

// expiredAt reports whether the entry is past its TTL at the given instant.
func (e Entry) expiredAt(now time.Time) bool {
	return now.After(e.CachedAt.Add(time.Duration(e.TTLSeconds) * time.Second))
}

// Stats describes the cache contents without side effects.
type Stats struct {
	Total          int   `json:"total"`
	Expired        int   `json:"expired"`
	Valid          int   `json:"valid"`
	TotalSizeBytes int64 `json:"totalSizeBytes"`
}

// EndpointCache stores raw upstream API responses keyed by
// (source, endpoint, params-hash) with a fixed TTL. BoltDB backs the cache
// with an in-memory tier for fast access, mirroring writes to both.
type EndpointCache struct {
	db                 *bolt.DB
	memCache           sync.Map
	dbPath             string
	ttl                time.Duration
	compressionEnabled bool

	// now is the clock used for freshness checks; overridable in tests.
	now func() time.Time
}

// NewEndpointCache opens (or creates) the cache database at dbPath.
// The TTL must be positive: the endpoint tier never caches forever.
func NewEndpointCache(dbPath string, ttl time.Duration, compressionEnabled bool) (*EndpointCache, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("endpoint cache requires a positive TTL, got %v", ttl)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %v", err)
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %v", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %v", err)
	}

	ec := &EndpointCache{
		db:                 db,
		dbPath:             dbPath,
		ttl:                ttl,
		compressionEnabled: compressionEnabled,
		now:                time.Now,
	}

	if err := ec.loadToMemory(); err != nil {
		log.Warnf("%s Failed to preload cache to memory: %v", logcolors.LogCache, err)
	}

	log.Infof("%s Endpoint cache initialized at %s (TTL: %v, compression: %v)",
		logcolors.LogCacheInit, dbPath, ttl, compressionEnabled)
	return ec, nil
}

// loadToMemory loads all cache entries from disk to memory.
// Unreadable entries are skipped, never fatal.
func (ec *EndpointCache) loadToMemory() error {
	count := 0
	err := ec.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				log.Warnf("%s Failed to unmarshal cache entry for key %s: %v", logcolors.LogCache, string(k), err)
				return nil // Continue to next entry
			}
			ec.memCache.Store(string(k), entry)
			count++
			return nil
		})
	})

	if err != nil {
		return err
	}

	log.Infof("%s Loaded %d entries from disk to memory", logcolors.LogCache, count)
	return nil
}

// HashParams produces a short order-independent hash of the request
// parameters. encoding/json serializes map keys in sorted order, so two
// set-equal parameter maps always hash identically.
func HashParams(params map[string]any) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Parameters are scalars and sequences; marshal failure means a
		// caller bug, but a degenerate hash still yields a usable key.
		data = []byte(fmt.Sprintf("%v", params))
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])[:8]
}

// key builds the bucket key for an entry.
func key(source, endpoint, paramsHash string) string {
	return source + "_" + endpoint + "_" + paramsHash
}

// Get returns the cached payload for (source, endpoint, params) if a
// matching non-expired entry exists. Expired or corrupt entries behave
// as a miss.
func (ec *EndpointCache) Get(source, endpoint string, params map[string]any) (json.RawMessage, bool) {
	k := key(source, endpoint, HashParams(params))

	if v, ok := ec.memCache.Load(k); ok {
		entry := v.(Entry)
		if entry.expiredAt(ec.now()) {
			log.Debugf("%s Cache expired: %s", logcolors.LogCache, k)
			ec.memCache.Delete(k)
			return nil, false
		}
		return ec.decodePayload(k, entry)
	}

	// Fall through to disk in case the memory tier was not preloaded.
	var entry Entry
	err := ec.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		data := b.Get([]byte(k))
		if data == nil {
			return fmt.Errorf("key not found")
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		log.Debugf("%s Cache miss: %s", logcolors.LogCache, k)
		return nil, false
	}

	if entry.expiredAt(ec.now()) {
		log.Debugf("%s Cache expired: %s", logcolors.LogCache, k)
		return nil, false
	}

	ec.memCache.Store(k, entry)
	return ec.decodePayload(k, entry)
}

// decodePayload unpacks an entry's payload, treating corrupt data as a miss.
func (ec *EndpointCache) decodePayload(k string, entry Entry) (json.RawMessage, bool) {
	payload := entry.Payload
	if entry.Compressed {
		decompressed, err := utils.DecompressString(payload)
		if err != nil {
			log.Warnf("%s Error decompressing cache value for key %s: %v", logcolors.LogCache, k, err)
			return nil, false
		}
		payload = decompressed
	}
	if !json.Valid([]byte(payload)) {
		log.Warnf("%s Corrupt cache payload for key %s, treating as miss", logcolors.LogCache, k)
		return nil, false
	}
	return json.RawMessage(payload), true
}

// Set stores (or replaces) the entry for (source, endpoint, params),
// stamping the current time. The payload is marshaled to JSON.
func (ec *EndpointCache) Set(source, endpoint string, params map[string]any, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	stored := string(data)
	compressed := false
	if ec.compressionEnabled {
		stored, err = utils.CompressString(string(data))
		if err != nil {
			log.Errorf("%s Error compressing cache value: %v", logcolors.LogCache, err)
			return err
		}
		compressed = true
	}

	hash := HashParams(params)
	entry := Entry{
		Source:     source,
		Endpoint:   endpoint,
		ParamsHash: hash,
		CachedAt:   ec.now(),
		TTLSeconds: int64(ec.ttl / time.Second),
		Payload:    stored,
		Compressed: compressed,
	}

	k := key(source, endpoint, hash)
	ec.memCache.Store(k, entry)

	return ec.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		raw, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return b.Put([]byte(k), raw)
	})
}

// Invalidate removes one entry if present; reports whether anything was removed.
func (ec *EndpointCache) Invalidate(source, endpoint string, params map[string]any) bool {
	k := key(source, endpoint, HashParams(params))

	_, existed := ec.memCache.Load(k)
	ec.memCache.Delete(k)

	err := ec.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		if !existed && b.Get([]byte(k)) != nil {
			existed = true
		}
		return b.Delete([]byte(k))
	})
	if err != nil {
		log.Warnf("%s Error invalidating %s: %v", logcolors.LogCache, k, err)
	}

	if existed {
		log.Infof("%s Invalidated: %s", logcolors.LogCache, k)
	}
	return existed
}

// ClearExpired removes every entry past its TTL; returns the count removed.
// Live entries are never touched.
func (ec *EndpointCache) ClearExpired() int {
	now := ec.now()
	removed := 0

	expired := make([]string, 0)
	ec.memCache.Range(func(k, v interface{}) bool {
		if v.(Entry).expiredAt(now) {
			expired = append(expired, k.(string))
		}
		return true
	})

	err := ec.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}

		// Disk may hold entries the memory tier never saw (corrupt loads)
		// or that were written by a previous process.
		var diskExpired []string
		cursor := b.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				diskExpired = append(diskExpired, string(k))
				continue
			}
			if entry.expiredAt(now) {
				diskExpired = append(diskExpired, string(k))
			}
		}

		for _, k := range diskExpired {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		log.Warnf("%s Error clearing expired entries: %v", logcolors.LogCacheClear, err)
	}

	for _, k := range expired {
		ec.memCache.Delete(k)
	}

	if removed > 0 {
		log.Infof("%s Cleared %d expired cache entries", logcolors.LogCacheClear, removed)
	}
	return removed
}

// ClearAll unconditionally removes every entry; returns the count removed.
func (ec *EndpointCache) ClearAll() int {
	removed := 0

	ec.memCache.Range(func(k, v interface{}) bool {
		ec.memCache.Delete(k)
		return true
	})

	err := ec.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b != nil {
			removed = b.Stats().KeyN
			if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		log.Warnf("%s Error clearing cache: %v", logcolors.LogCacheClear, err)
		return 0
	}

	if removed > 0 {
		log.Infof("%s Cleared all %d cache entries", logcolors.LogCacheClear, removed)
	}
	return removed
}

// Stats returns cache statistics. Inspection only, no side effects.
func (ec *EndpointCache) Stats() Stats {
	now := ec.now()
	var s Stats

	err := ec.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			s.Total++
			s.TotalSizeBytes += int64(len(k) + len(v))

			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil || entry.expiredAt(now) {
				s.Expired++
			}
			return nil
		})
	})
	if err != nil {
		log.Warnf("%s Error collecting cache stats: %v", logcolors.LogCache, err)
	}

	s.Valid = s.Total - s.Expired
	return s
}

// Close closes the database connection.
func (ec *EndpointCache) Close() error {
	if ec.db != nil {
		return ec.db.Close()
	}
	return nil
}
