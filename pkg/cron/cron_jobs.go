package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"sales_insights/internal/models"
	"sales_insights/pkg/utils"
)

type Reseeder interface {
	Initialize(ctx context.Context) (models.SeedResult, error)
	Source() string
}

// FailureNotifier is told about a scheduled import that failed.
type FailureNotifier func(source string, cause error, failedAt time.Time) error

// MailNotifier sends the failure alert to one address.
func MailNotifier(cfg utils.SMTPConfig, to string) FailureNotifier {
	return func(source string, cause error, failedAt time.Time) error {
		return utils.SendSeedFailureEmail(cfg, to, source, cause, failedAt)
	}
}

// StartCronJob schedules RunScheduledSeed with a standard cron spec.
// notify may be nil.
func StartCronJob(spec string, seeder Reseeder, timeout time.Duration, notify FailureNotifier) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		RunScheduledSeed(seeder, timeout, notify)
	})
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to schedule seed job", logrus.Fields{"schedule": spec})
	}

	c.Start()
	utils.Logger.WithField("schedule", spec).Info("Cron jobs started (scheduled transaction import)")
	return c, nil
}

// -------------------------------------------------------------
// Re-import the seed dataset; alert on failure
// -------------------------------------------------------------
func RunScheduledSeed(seeder Reseeder, timeout time.Duration, notify FailureNotifier) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := utils.Logger.WithField("source", seeder.Source())

	result, err := seeder.Initialize(ctx)
	if err != nil {
		log.WithFields(logrus.Fields{"kind": utils.KindOf(err)}).WithError(err).Error("Scheduled import failed")
		if notify != nil {
			if nerr := notify(seeder.Source(), err, time.Now()); nerr != nil {
				log.WithError(nerr).Error("Failed to send import failure alert")
			}
		}
		return err
	}

	log.WithField("records", result.Records).Info("Scheduled import finished")
	return nil
}
