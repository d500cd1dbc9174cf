package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBreaker(now *time.Time) *Breaker {
	return New(Settings{
		FailureThreshold: 3,
		Cooldown:         10 * time.Second,
		HalfOpenProbes:   1,
		Now:              func() time.Time { return *now },
	})
}

func TestBreaker_StaysClosedBelowThreshold(t *testing.T) {
	now := time.Now()
	b := newTestBreaker(&now)

	b.Record(false)
	b.Record(false)
	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Allow())
}

func TestBreaker_SuccessResetsFailureRun(t *testing.T) {
	now := time.Now()
	b := newTestBreaker(&now)

	b.Record(false)
	b.Record(false)
	b.Record(true)
	b.Record(false)
	b.Record(false)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	now := time.Now()
	b := newTestBreaker(&now)

	for i := 0; i < 3; i++ {
		assert.NoError(t, b.Allow())
		b.Record(false)
	}

	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrOpen)
}

func TestBreaker_OpenShortCircuitsWithinCooldown(t *testing.T) {
	now := time.Now()
	b := newTestBreaker(&now)
	for i := 0; i < 3; i++ {
		b.Record(false)
	}

	now = now.Add(9 * time.Second)
	assert.ErrorIs(t, b.Allow(), ErrOpen)
}

func TestBreaker_HalfOpenAfterCooldown_ProbeSuccessCloses(t *testing.T) {
	now := time.Now()
	b := newTestBreaker(&now)
	for i := 0; i < 3; i++ {
		b.Record(false)
	}

	now = now.Add(11 * time.Second)
	assert.NoError(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())

	// The probe budget is one; a second caller is refused.
	assert.ErrorIs(t, b.Allow(), ErrOpen)

	b.Record(true)
	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Allow())
}

func TestBreaker_HalfOpenProbeFailureReopens(t *testing.T) {
	now := time.Now()
	b := newTestBreaker(&now)
	for i := 0; i < 3; i++ {
		b.Record(false)
	}

	now = now.Add(11 * time.Second)
	assert.NoError(t, b.Allow())
	b.Record(false)

	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrOpen)

	// The cooldown restarts from the failed probe.
	now = now.Add(9 * time.Second)
	assert.ErrorIs(t, b.Allow(), ErrOpen)
	now = now.Add(2 * time.Second)
	assert.NoError(t, b.Allow())
}

func TestBreaker_DoClassifiesFailures(t *testing.T) {
	now := time.Now()
	b := newTestBreaker(&now)

	domainErr := errors.New("domain rejection")
	infraErr := errors.New("remote unavailable")
	isInfra := func(err error) bool { return errors.Is(err, infraErr) }

	// Domain rejections never trip the breaker.
	for i := 0; i < 10; i++ {
		err := b.Do(func() error { return domainErr }, isInfra)
		assert.ErrorIs(t, err, domainErr)
	}
	assert.Equal(t, StateClosed, b.State())

	for i := 0; i < 3; i++ {
		err := b.Do(func() error { return infraErr }, isInfra)
		assert.ErrorIs(t, err, infraErr)
	}
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Do(func() error { return nil }, isInfra), ErrOpen)
}

func TestBreaker_Defaults(t *testing.T) {
	b := New(Settings{})
	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Allow())
}

func TestBreaker_StateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
}
