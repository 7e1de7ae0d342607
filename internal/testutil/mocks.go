package testutil

import (
	"context"
	"kinstore/internal/providers"
	"kinstore/internal/structures"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu           sync.Mutex
	Persistence  map[string]int
	Records      map[string]int
	Uploads      map[string]int
	CacheHits    int
	CacheMisses  int
	RequestCalls int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Persistence: make(map[string]int),
		Records:     make(map[string]int),
		Uploads:     make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCalls++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistence[operation]++
}
func (m *MockMetrics) SetRecordsTotal(resource string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records[resource] = count
}
func (m *MockMetrics) IncUploadsTotal(kind string, accepted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if accepted {
		m.Uploads[kind+":accepted"]++
	} else {
		m.Uploads[kind+":rejected"]++
	}
}

// NoopTracing implements providers.TracingProviderInterface.
type NoopTracing struct{}

func (NoopTracing) Tracer() trace.Tracer             { return noop.NewTracerProvider().Tracer("test") }
func (NoopTracing) Shutdown(_ context.Context) error { return nil }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Deleted []string
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.Data, k)
		m.Deleted = append(m.Deleted, k)
	}
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// Config returns a config whose every path lives under dir.
func Config(dir string) *structures.Config {
	return &structures.Config{
		AppName: "KinStore",
		Storage: structures.StorageConfig{
			Driver:   "file",
			Offers:   filepath.Join(dir, "data", "offers.json"),
			Products: filepath.Join(dir, "public", "data", "products.json"),
			Users:    filepath.Join(dir, "data", "users.json"),
			Chat:     filepath.Join(dir, "data", "chat.json"),
		},
		Upload: structures.UploadConfig{
			MediaDir:         filepath.Join(dir, "media"),
			PublicDir:        filepath.Join(dir, "public"),
			MaxImageSize:     2 << 20,
			MaxThumbnailSize: 2 << 20,
			MaxVideoSize:     10 << 20,
		},
		Auth: structures.AuthConfig{
			AdminUsername:   "admin",
			AdminPassword:   "admin123",
			PasswordHashing: "plain",
			SessionMaxAge:   24 * time.Hour,
		},
		Backup: structures.BackupConfig{
			FilePath: filepath.Join(dir, "backup.zst"),
			Interval: time.Minute,
		},
		Offers: structures.OffersConfig{
			CarouselInterval: 8 * time.Second,
		},
	}
}
