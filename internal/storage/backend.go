package storage

// Backend loads and saves whole raw documents. Load returns ErrNotExist
// when the resource was never written.
type Backend interface {
	Name() string
	Load(res Resource) ([]byte, error)
	Save(res Resource, data []byte) error
	Close() error
}
