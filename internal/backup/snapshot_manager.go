package backup

import (
	"context"
	"fmt"
	"kinstore/internal/backup/interfaces"
	"kinstore/internal/providers"
	"kinstore/internal/storage"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

const SnapshotVersion = 1

// Snapshot holds every resource document exactly as stored.
type Snapshot struct {
	Version   int                        `json:"version"`
	CreatedAt string                     `json:"createdAt"`
	Resources map[string]json.RawMessage `json:"resources"`
}

type SnapshotManager struct {
	store      storage.StoreInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewSnapshotManager(compressor interfaces.CompressorInterface, store storage.StoreInterface, logger providers.Logger) *SnapshotManager {
	return &SnapshotManager{
		store:      store,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}
}

func (m *SnapshotManager) Take(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: m.now().UTC().Format(time.RFC3339),
		Resources: make(map[string]json.RawMessage, len(storage.AllResources())),
	}
	for _, res := range storage.AllResources() {
		raw, err := m.store.ReadRaw(ctx, res)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", res, err)
		}
		snap.Resources[string(res)] = raw
	}
	return snap, nil
}

func (m *SnapshotManager) SaveToFile(ctx context.Context, fileName string) error {
	snap, err := m.Take(ctx)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := m.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fileName)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, filepath.Base(fileName)+".*.tmp")
	if err != nil {
		return err
	}
	tmpFile := file.Name()

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile returns nil, nil when no snapshot has been written yet.
func (m *SnapshotManager) LoadFromFile(fileName string) (*Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := m.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err = json.Unmarshal(decompressed, &snap); err != nil {
		return nil, err
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}

// RestoreMissing copies snapshot documents into resources whose document does
// not exist. A document that exists is kept even when it is empty, since an
// admin may have cleared it on purpose. It returns what was restored.
func (m *SnapshotManager) RestoreMissing(ctx context.Context, snap *Snapshot) ([]storage.Resource, error) {
	var restored []storage.Resource
	for _, res := range storage.AllResources() {
		doc, ok := snap.Resources[string(res)]
		if !ok || isEmptyDocument(doc) {
			continue
		}
		exists, err := m.store.Exists(ctx, res)
		if err != nil {
			return restored, err
		}
		if exists {
			continue
		}
		if err = m.store.WriteRaw(ctx, res, doc); err != nil {
			return restored, fmt.Errorf("restore %s: %w", res, err)
		}
		m.logger.Warnf(providers.TypeApp, "Restored %s from snapshot taken at %s", res, snap.CreatedAt)
		restored = append(restored, res)
	}
	return restored, nil
}

// isEmptyDocument is true for an empty list, or an object whose lists are all
// empty.
func isEmptyDocument(raw []byte) bool {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false
	}
	switch v := doc.(type) {
	case nil:
		return true
	case []any:
		return len(v) == 0
	case map[string]any:
		for _, field := range v {
			if field == nil {
				continue
			}
			if list, ok := field.([]any); !ok || len(list) > 0 {
				return false
			}
		}
		return true
	}
	return false
}
