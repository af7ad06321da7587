// Package jobs holds the scheduled background checks.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/events"
	"github.com/ukydev/tripsheet/internal/models"
)

// DocumentSource lists truck documents expiring within a window.
type DocumentSource interface {
	ExpiringDocuments(ctx context.Context, within time.Duration) ([]models.ExpiringDocument, error)
}

// ExpiryChecker warns about truck compliance documents that are close to or past expiry.
type ExpiryChecker struct {
	cronScheduler *cron.Cron
	source        DocumentSource
	publisher     events.Publisher
	schedule      string
	within        time.Duration
	timeout       time.Duration
	jobID         cron.EntryID
}

// NewExpiryChecker creates a checker. schedule is a six-field cron spec with seconds.
func NewExpiryChecker(source DocumentSource, publisher events.Publisher, schedule string, within time.Duration) *ExpiryChecker {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ExpiryChecker{
		cronScheduler: cron.New(cron.WithSeconds()),
		source:        source,
		publisher:     publisher,
		schedule:      schedule,
		within:        within,
		timeout:       time.Minute,
	}
}

// Start schedules the check and starts the scheduler.
func (c *ExpiryChecker) Start() error {
	var err error
	c.jobID, err = c.cronScheduler.AddFunc(c.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if _, err := c.RunOnce(ctx); err != nil {
			log.WithError(err).Error("document expiry check failed")
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling expiry check: %w", err)
	}

	c.cronScheduler.Start()
	log.WithField("schedule", c.schedule).Info("document expiry check scheduled")
	return nil
}

// Stop terminates the scheduler and waits for a running check to finish.
func (c *ExpiryChecker) Stop() {
	if c.cronScheduler == nil {
		return
	}
	<-c.cronScheduler.Stop().Done()
	log.Info("document expiry check stopped")
}

// RunOnce checks every truck now and publishes one event per expiring document.
// It returns the documents found.
func (c *ExpiryChecker) RunOnce(ctx context.Context) ([]models.ExpiringDocument, error) {
	docs, err := c.source.ExpiringDocuments(ctx, c.within)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		entry := log.WithFields(log.Fields{
			"truck_no":  doc.TruckNo,
			"document":  doc.Label,
			"expiry":    models.FormatDate(doc.Expiry),
			"days_left": doc.DaysLeft,
		})
		if doc.DaysLeft < 0 {
			entry.Warn("truck document expired")
		} else {
			entry.Info("truck document expiring")
		}
		if err := c.publisher.Publish(ctx, events.DocumentExpiring, doc); err != nil {
			log.WithError(err).WithField("truck_no", doc.TruckNo).Warn("failed to publish expiry event")
		}
	}
	log.WithField("documents", len(docs)).Debug("document expiry check finished")
	return docs, nil
}
