package services

import (
	"time"

	"github.com/sourcegraph/conc"

	"github.com/runebound-clan/competition-poller/consumer"
	"github.com/runebound-clan/competition-poller/internal/clients/ingestclient"
	"github.com/runebound-clan/competition-poller/internal/clients/womclient"
	"github.com/runebound-clan/competition-poller/internal/config"
	"github.com/runebound-clan/competition-poller/internal/db"
	"github.com/runebound-clan/competition-poller/pkg"
)

type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	wom       womclient.WomInterface
	submitter *Submitter
	// publisher is optional
	publisher consumer.EventPublisher

	leaseOwner string
	now        func() time.Time
	// best-effort tasks that outlive a cycle (competition refresh)
	background conc.WaitGroup
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	wom womclient.WomInterface,
	ingestion ingestclient.IngestionInterface,
	publisher consumer.EventPublisher,
) *Service {
	return &Service{
		cfg:        cfg,
		db:         db,
		wom:        wom,
		submitter:  NewSubmitter(ingestion, cfg.Poller.SubmissionConcurrency),
		publisher:  publisher,
		leaseOwner: pkg.InstanceID(),
		now:        time.Now,
	}
}

// WaitBackground blocks until best-effort tasks started by previous cycles are done
func (s *Service) WaitBackground() {
	s.background.Wait()
}
