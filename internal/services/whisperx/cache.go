package whisperx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/gofrs/flock"

	"pitchside/internal/fileutil"
	"pitchside/internal/textutil"
)

const (
	cacheVersion      = 1
	lockRetryBase     = 100 * time.Millisecond
	lockRetryMaxDelay = 2 * time.Second
)

var errCacheBusy = errors.New("transcript cache entry locked")

// Cache stores finished transcripts keyed by media content, language, and model.
type Cache struct {
	dir string
}

// NewCache returns a cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

type cacheEntry struct {
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	Transcript Transcript `json:"transcript"`
}

// Key derives the cache key for a media file.
func (c *Cache) Key(mediaPath, language, model string) (string, error) {
	digest, err := fileutil.HashFile(mediaPath)
	if err != nil {
		return "", fmt.Errorf("transcript cache key: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", digest[:32], textutil.SanitizeToken(language), textutil.SanitizeToken(model)), nil
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Load returns the cached transcript for key, if present.
func (c *Cache) Load(key string) (Transcript, bool, error) {
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Transcript{}, false, nil
		}
		return Transcript{}, false, fmt.Errorf("read transcript cache: %w", err)
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Version != cacheVersion {
		// Unreadable or stale entries are treated as misses and overwritten.
		return Transcript{}, false, nil
	}
	entry.Transcript.Cached = true
	return entry.Transcript, true, nil
}

// Store persists a transcript under key.
func (c *Cache) Store(key string, transcript Transcript) error {
	transcript.Cached = false
	data, err := json.MarshalIndent(cacheEntry{
		Version:    cacheVersion,
		CreatedAt:  time.Now().UTC(),
		Transcript: transcript,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript cache: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.entryPath(key), data, 0o644); err != nil {
		return fmt.Errorf("write transcript cache: %w", err)
	}
	return nil
}

// Lock takes an exclusive per-key file lock so concurrent processes do not
// transcribe the same media twice. It waits, retrying with backoff, until the
// lock is free or ctx ends.
func (c *Cache) Lock(ctx context.Context, key string) (func(), error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure transcript cache dir: %w", err)
	}
	lock := flock.New(filepath.Join(c.dir, key+".lock"))

	policy := retrypolicy.Builder[bool]().
		HandleErrors(errCacheBusy).
		WithBackoff(lockRetryBase, lockRetryMaxDelay).
		WithMaxRetries(-1).
		ReturnLastFailure().
		Build()

	_, err := failsafe.NewExecutor[bool](policy).WithContext(ctx).Get(func() (bool, error) {
		ok, err := lock.TryLock()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, errCacheBusy
		}
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("acquire transcript cache lock: %w", err)
	}
	return func() { _ = lock.Unlock() }, nil
}
