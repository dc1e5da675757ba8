package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales_insights/internal/models"
	"sales_insights/pkg/utils"
)

type stubReseeder struct {
	result models.SeedResult
	err    error
	calls  int
}

func (s *stubReseeder) Initialize(ctx context.Context) (models.SeedResult, error) {
	s.calls++
	if _, ok := ctx.Deadline(); !ok {
		return models.SeedResult{}, errors.New("missing deadline")
	}
	return s.result, s.err
}

func (s *stubReseeder) Source() string {
	return "https://seed.example/data.json"
}

func TestRunScheduledSeed_Success(t *testing.T) {
	seeder := &stubReseeder{result: models.SeedResult{Records: 60}}
	notified := false

	err := RunScheduledSeed(seeder, time.Second, func(string, error, time.Time) error {
		notified = true
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, seeder.calls)
	assert.False(t, notified)
}

func TestRunScheduledSeed_NotifiesOnFailure(t *testing.T) {
	cause := utils.SeedFetchError(errors.New("503"), "seed provider returned an error")
	seeder := &stubReseeder{err: cause}

	var gotSource string
	var gotCause error
	err := RunScheduledSeed(seeder, time.Second, func(source string, err error, failedAt time.Time) error {
		gotSource, gotCause = source, err
		assert.False(t, failedAt.IsZero())
		return errors.New("smtp down")
	})

	require.ErrorIs(t, err, cause)
	assert.Equal(t, seeder.Source(), gotSource)
	assert.ErrorIs(t, gotCause, cause)
}

func TestRunScheduledSeed_NilNotifier(t *testing.T) {
	seeder := &stubReseeder{err: errors.New("boom")}
	assert.Error(t, RunScheduledSeed(seeder, time.Second, nil))
}

func TestStartCronJob(t *testing.T) {
	seeder := &stubReseeder{}

	_, err := StartCronJob("not a schedule", seeder, time.Second, nil)
	assert.Error(t, err)

	c, err := StartCronJob("@every 1h", seeder, time.Second, nil)
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
}
