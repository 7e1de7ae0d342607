package storage

import (
	"fmt"
	"kinstore/internal/structures"
	"os"
	"path/filepath"
)

const documentFileMode = 0644

// FileBackend keeps each resource in its own JSON file.
type FileBackend struct {
	paths map[Resource]string
}

func NewFileBackend(conf structures.StorageConfig) *FileBackend {
	return &FileBackend{
		paths: map[Resource]string{
			Offers:   conf.Offers,
			Products: conf.Products,
			Users:    conf.Users,
			Chat:     conf.Chat,
		},
	}
}

func (f *FileBackend) Name() string {
	return "file"
}

func (f *FileBackend) path(res Resource) (string, error) {
	p, ok := f.paths[res]
	if !ok || p == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, res)
	}
	return p, nil
}

func (f *FileBackend) Load(res Resource) ([]byte, error) {
	fileName, err := f.path(res)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

// Save replaces the file through a synced temp file and a rename, so readers
// see either the old or the new document. It does not guard a caller's
// read-modify-write cycle.
func (f *FileBackend) Save(res Resource, data []byte) error {
	fileName, err := f.path(res)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}

	// A unique temp name per write keeps concurrent writers from sharing one.
	file, err := os.CreateTemp(filepath.Dir(fileName), filepath.Base(fileName)+".*.tmp")
	if err != nil {
		return err
	}
	tmpFile := file.Name()

	if err = file.Chmod(documentFileMode); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	_, err = file.Write(data)
	if err != nil {
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

func (f *FileBackend) Close() error {
	return nil
}
