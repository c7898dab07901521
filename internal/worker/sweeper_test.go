package worker

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"event_marketplace/internal/adapter/http/handlers/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSweeperTick_ContinuesAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	var ran []string
	job := func(name string, n int, err error) Job {
		return Job{Name: name, Run: func(context.Context) (int, error) {
			ran = append(ran, name)
			return n, err
		}}
	}

	s := NewSweeper(time.Minute, zerolog.New(&buf),
		job("first", 0, errors.New("store down")),
		job("second", 2, nil),
	)
	s.Tick(context.Background())

	assert.Equal(t, []string{"first", "second"}, ran)
	assert.Contains(t, buf.String(), `"job":"first"`)
	assert.Contains(t, buf.String(), "sweep failed")
	assert.Contains(t, buf.String(), `"changed":2`)
}

func TestSweeperTick_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	s := NewSweeper(time.Minute, zerolog.Nop(), Job{Name: "never", Run: func(context.Context) (int, error) {
		called = true
		return 0, nil
	}})
	s.Tick(ctx)
	assert.False(t, called)
}

func TestSweeperRun_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan struct{}, 8)
	s := NewSweeper(10*time.Millisecond, zerolog.Nop(), Job{Name: "tick", Run: func(context.Context) (int, error) {
		ticks <- struct{}{}
		return 0, nil
	}})

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("first sweep did not run")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestJobs_CallsEachSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	quotes := mocks.NewMockIQuoteUseCase(ctrl)
	bookings := mocks.NewMockIBookingUseCase(ctrl)
	payments := mocks.NewMockIPaymentUseCase(ctrl)

	gomock.InOrder(
		quotes.EXPECT().ExpireStale(gomock.Any()).Return(1, nil),
		payments.EXPECT().ExpireStaleSessions(gomock.Any()).Return(0, nil),
		bookings.EXPECT().ScheduleDueBalances(gomock.Any()).Return(3, nil),
		bookings.EXPECT().CompleteElapsed(gomock.Any()).Return(0, nil),
	)

	jobs := Jobs(quotes, bookings, payments)
	require.Len(t, jobs, 4)
	NewSweeper(time.Minute, zerolog.Nop(), jobs...).Tick(context.Background())
}
