package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// ErrObjectNotFound is returned by MemoryStore for unknown keys.
var ErrObjectNotFound = errors.New("storage: object not found")

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore keeps objects in process memory and serves them through
// HMAC-signed, expiring URLs. It backs local development when no bucket is
// configured, and tests.
type MemoryStore struct {
	baseURL string
	secret  []byte
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore signs URLs rooted at baseURL, which must route to
// ServeHTTP.
func NewMemoryStore(baseURL, secret string, ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		baseURL: baseURL,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		objects: make(map[string]memoryObject),
	}
}

// SetBaseURL is used when the serving address is only known after the store
// is built (httptest servers).
func (m *MemoryStore) SetBaseURL(baseURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseURL = baseURL
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage: empty key")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: buf, contentType: contentType}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) SignedURL(_ context.Context, key, contentType string) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[key]
	base := m.baseURL
	m.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}

	expires := strconv.FormatInt(m.now().Add(m.ttl).Unix(), 10)
	q := url.Values{}
	q.Set("key", key)
	q.Set("expires", expires)
	q.Set("content_type", contentType)
	q.Set("sig", m.sign(key, expires, contentType))
	return base + "?" + q.Encode(), nil
}

// Has reports whether key is stored.
func (m *MemoryStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// ServeHTTP answers signed URLs produced by SignedURL.
func (m *MemoryStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, expires, contentType := q.Get("key"), q.Get("expires"), q.Get("content_type")

	if !hmac.Equal([]byte(q.Get("sig")), []byte(m.sign(key, expires, contentType))) {
		http.Error(w, "invalid signature", http.StatusForbidden)
		return
	}
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil || m.now().Unix() > exp {
		http.Error(w, "url expired", http.StatusForbidden)
		return
	}

	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	if contentType == "" {
		contentType = obj.contentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.data)))
	_, _ = w.Write(obj.data)
}

func (m *MemoryStore) sign(key, expires, contentType string) string {
	mac := hmac.New(sha256.New, m.secret)
	fmt.Fprintf(mac, "%s\n%s\n%s", key, expires, contentType)
	return hex.EncodeToString(mac.Sum(nil))
}
