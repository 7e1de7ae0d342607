package providers

import (
	"fmt"
	"kinstore/internal/structures"

	"github.com/gookit/validate"
)

// MaxCacheSizeMB caps cache.size; freecache allocates the whole ring up front.
const MaxCacheSizeMB = 1024

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.String())
	}
	if c.conf.Storage.Driver == "sqlite" && c.conf.Storage.DSN == "" {
		return fmt.Errorf("invalid config: storage.dsn is required for the sqlite driver")
	}
	if c.conf.Cache.Size < 0 || c.conf.Cache.Size > MaxCacheSizeMB {
		return fmt.Errorf("invalid config: cache.size is in MB and must be between 0 and %d, got %d", MaxCacheSizeMB, c.conf.Cache.Size)
	}
	if c.conf.Tracing.Enabled && c.conf.Tracing.Endpoint == "" {
		return fmt.Errorf("invalid config: tracing.endpoint is required when tracing is enabled")
	}
	return nil
}
