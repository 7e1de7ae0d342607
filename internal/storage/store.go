package storage

import (
	"context"
	"errors"
	"fmt"
	"kinstore/internal/providers"
	"kinstore/internal/structures"
	"time"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StoreInterface is the read-all / write-all contract every handler builds on.
// Callers read the current document, apply one mutation and write the whole
// document back. Two interleaved callers lose the earlier write.
type StoreInterface interface {
	Read(ctx context.Context, res Resource, dst any) error
	Write(ctx context.Context, res Resource, src any) error
	ReadRaw(ctx context.Context, res Resource) ([]byte, error)
	WriteRaw(ctx context.Context, res Resource, data []byte) error
	// Exists reports whether the document was ever written. Unlike the
	// readers it never creates the document.
	Exists(ctx context.Context, res Resource) (bool, error)
	Driver() string
}

type Store struct {
	backend Backend
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	tracer  trace.Tracer
}

func NewStore(backend Backend, logger providers.Logger, metrics providers.MetricsProviderInterface, tracing providers.TracingProviderInterface) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
		metrics: metrics,
		tracer:  tracing.Tracer(),
	}
}

// NewStoreProvider picks the backend named by storage.driver. The cleanup
// closes it.
func NewStoreProvider(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, tracing providers.TracingProviderInterface) (StoreInterface, func(), error) {
	var backend Backend
	switch conf.Storage.Driver {
	case "sqlite":
		b, err := NewSQLiteBackend(conf.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		backend = b
	case "file", "":
		backend = NewFileBackend(conf.Storage)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}

	logger.Infof(providers.TypeApp, "Storage driver: %s", backend.Name())

	cleanup := func() {
		if err := backend.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error closing storage: %s", err)
		}
	}
	return NewStore(backend, logger, metrics, tracing), cleanup, nil
}

func (s *Store) Driver() string {
	return s.backend.Name()
}

func (s *Store) span(ctx context.Context, op string, res Resource) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "store."+op, trace.WithAttributes(
		attribute.String("store.driver", s.backend.Name()),
		attribute.String("store.resource", string(res)),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ReadRaw returns the stored document. A resource that was never written is
// created with its empty document first.
func (s *Store) ReadRaw(ctx context.Context, res Resource) (data []byte, err error) {
	_, span := s.span(ctx, "read", res)
	defer func() { endSpan(span, err) }()

	start := time.Now()
	defer func() { s.metrics.ObservePersistenceDuration("read", time.Since(start)) }()

	data, err = s.backend.Load(res)
	if errors.Is(err, ErrNotExist) {
		data = EmptyDocument(res)
		if err = s.backend.Save(res, data); err != nil {
			return nil, fmt.Errorf("create %s: %w", res, err)
		}
		s.logger.Infof(providers.TypeApp, "Created empty %s document", res)
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", res, err)
	}
	return data, nil
}

func (s *Store) Exists(ctx context.Context, res Resource) (exists bool, err error) {
	_, span := s.span(ctx, "exists", res)
	defer func() { endSpan(span, err) }()

	_, err = s.backend.Load(res)
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", res, err)
	}
	return true, nil
}

func (s *Store) WriteRaw(ctx context.Context, res Resource, data []byte) (err error) {
	_, span := s.span(ctx, "write", res)
	defer func() { endSpan(span, err) }()

	start := time.Now()
	defer func() { s.metrics.ObservePersistenceDuration("write", time.Since(start)) }()

	if !json.Valid(data) {
		return fmt.Errorf("write %s: %w", res, ErrCorrupt)
	}
	if err = s.backend.Save(res, data); err != nil {
		return fmt.Errorf("write %s: %w", res, err)
	}
	return nil
}

func (s *Store) Read(ctx context.Context, res Resource, dst any) error {
	data, err := s.ReadRaw(ctx, res)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w: %v", res, ErrCorrupt, err)
	}
	return nil
}

func (s *Store) Write(ctx context.Context, res Resource, src any) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", res, err)
	}
	return s.WriteRaw(ctx, res, data)
}

// ReadList reads a list document. The result is never nil.
func ReadList[T any](ctx context.Context, s StoreInterface, res Resource) ([]T, error) {
	var list []T
	if err := s.Read(ctx, res, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// WriteList writes a list document; a nil list is stored as [].
func WriteList[T any](ctx context.Context, s StoreInterface, res Resource, list []T) error {
	if list == nil {
		list = []T{}
	}
	return s.Write(ctx, res, list)
}
