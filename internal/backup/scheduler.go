package backup

import (
	"context"
	"kinstore/internal/backup/interfaces"
	"kinstore/internal/providers"
	"kinstore/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config   structures.BackupConfig
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	snapshot *SnapshotManager
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	if !s.config.Enabled {
		return
	}
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Interval), func() {
		if err := s.Persist(); err == nil {
			s.logger.Infof(providers.TypeApp, "Backup written to %s", s.config.FilePath)
		}
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if !s.config.RestoreOnStart {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	snap, err := s.snapshot.LoadFromFile(s.config.FilePath)
	if err != nil {
		return err
	}
	if snap == nil {
		s.logger.Infof(providers.TypeApp, "No backup at %s, nothing to restore", s.config.FilePath)
		return nil
	}
	_, err = s.snapshot.RestoreMissing(context.Background(), snap)
	return err
}

func (s *Scheduler) Persist() error {
	if !s.config.Enabled {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.snapshot.SaveToFile(context.Background(), s.config.FilePath)
	s.metrics.ObservePersistenceDuration("backup", time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while writing backup: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, snapshot *SnapshotManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config.Backup,
		logger:   logger,
		metrics:  metrics,
		snapshot: snapshot,
	}
}
