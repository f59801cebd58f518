// Package jobs schedules the background work: the hourly SLA sweep over the
// Red-tier callback queue.
package jobs

import (
	"context"
	"time"

	"github.com/rhicrm/rhi-backend/pkg/dashboard"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/email"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CronManager manages scheduled jobs.
type CronManager struct {
	cron      *cron.Cron
	dashboard *dashboard.Service
	notifier  domain.Notifier
	email     *email.Service
	slaEmail  string
	log       logger.Logger
}

// NewCronManager creates a cron manager. notifier and email may be nil; the
// sweep still runs and logs its findings.
func NewCronManager(dash *dashboard.Service, notifier domain.Notifier, mailer *email.Service, slaEmail string, log logger.Logger) *CronManager {
	return &CronManager{
		cron:      cron.New(),
		dashboard: dash,
		notifier:  notifier,
		email:     mailer,
		slaEmail:  slaEmail,
		log:       log,
	}
}

// SetupJobs configures all scheduled jobs.
func (cm *CronManager) SetupJobs() error {
	// Hourly: sweep the Red queue for clients past the 24h callback window.
	_, err := cm.cron.AddFunc("0 * * * *", cm.runSLASweep)
	if err != nil {
		return err
	}

	cm.log.Info("cron jobs configured", "jobs", "hourly SLA sweep")
	return nil
}

func (cm *CronManager) runSLASweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	breached, err := cm.dashboard.SweepSLA(ctx, cm.notifier)
	if err != nil {
		cm.log.Error("sla sweep failed", "error", err)
		return
	}
	if len(breached) == 0 {
		cm.log.Debug("sla sweep clean")
		return
	}

	cm.log.Warn("sla sweep found overdue clients", "count", len(breached))

	if cm.email != nil && cm.slaEmail != "" {
		if err := cm.email.SendSLADigest(cm.slaEmail, breached); err != nil {
			cm.log.Error("sla digest failed", "error", err)
		}
	}
}

// Start starts the cron scheduler.
func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop stops the cron scheduler and waits for running jobs.
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
}
