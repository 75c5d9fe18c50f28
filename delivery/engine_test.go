package delivery

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamsync/ocpi/types"
	"roamsync/subscription"
	"roamsync/utility"
)

type silentLog struct{}

func (silentLog) FeatureEvent(feature, id, text string) {}
func (silentLog) Warn(text string)                      {}
func (silentLog) Error(text string, err error)          {}

// fakeSender records deliveries; Send optionally fails a number of
// leading attempts and optionally blocks until release is closed.
type fakeSender struct {
	mutex       sync.Mutex
	sent        []Update
	cancels     []subscription.Cancellation
	failures    int
	release     chan struct{}
	inFlight    int
	maxInFlight int
}

func (s *fakeSender) Send(ctx context.Context, update Update) error {
	s.mutex.Lock()
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	release := s.release
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.inFlight--
		s.mutex.Unlock()
	}()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.failures > 0 {
		s.failures--
		return utility.Err("receiver unavailable")
	}
	s.sent = append(s.sent, update)
	return nil
}

func (s *fakeSender) SendCancel(ctx context.Context, cancellation subscription.Cancellation) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cancels = append(s.cancels, cancellation)
	return nil
}

func (s *fakeSender) sentIds() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	ids := make([]string, 0, len(s.sent))
	for _, update := range s.sent {
		ids = append(ids, update.Id)
	}
	return ids
}

func (s *fakeSender) cancelReasons() []subscription.CancelReason {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	reasons := make([]subscription.CancelReason, 0, len(s.cancels))
	for _, cancellation := range s.cancels {
		reasons = append(reasons, cancellation.Reason)
	}
	return reasons
}

func (s *fakeSender) currentInFlight() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.inFlight
}

func (s *fakeSender) peakInFlight() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.maxInFlight
}

func testEngine(t *testing.T, params subscription.Parameters, sender Sender) *Engine {
	t.Helper()
	id, err := types.ParseSubscriptionId("sub-1")
	require.NoError(t, err)
	agreement, err := subscription.NewAgreement(id, subscription.Request{Parameters: params})
	require.NoError(t, err)
	engine := NewEngine(agreement, sender, silentLog{})
	engine.Start()
	t.Cleanup(func() { engine.Cancel(subscription.ReasonOther) })
	return engine
}

func update(id string) Update {
	return Update{Id: id, Kind: UpdateLocation, Payload: map[string]string{"id": id}}
}

func TestDeliveryDrainsQueueInOrder(t *testing.T) {
	sender := &fakeSender{}
	engine := testEngine(t, subscription.Parameters{
		RetryInterval: 10 * time.Millisecond,
		MaxQueueSize:  10,
	}, sender)

	assert.True(t, engine.Enqueue(update("u1")))
	assert.True(t, engine.Enqueue(update("u2")))
	assert.True(t, engine.Enqueue(update("u3")))

	require.Eventually(t, func() bool {
		return engine.QueueSize() == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"u1", "u2", "u3"}, sender.sentIds())
}

func TestEnqueueBeyondBoundCancelsWithOverflow(t *testing.T) {
	sender := &fakeSender{release: make(chan struct{})}
	engine := testEngine(t, subscription.Parameters{
		RetryInterval: 10 * time.Millisecond,
		MaxQueueSize:  2,
	}, sender)

	// an update taken for delivery still occupies its slot until the
	// receiver acknowledges it
	assert.True(t, engine.Enqueue(update("u1")))
	assert.True(t, engine.Enqueue(update("u2")))
	assert.False(t, engine.Enqueue(update("u3")))

	assert.True(t, engine.Agreement().Cancelled())
	assert.Equal(t, subscription.ReasonQueueOverflow, engine.Agreement().CancelReason())
	assert.Equal(t, []subscription.CancelReason{subscription.ReasonQueueOverflow}, sender.cancelReasons())
}

func TestEnqueueAfterCancelIsRejected(t *testing.T) {
	sender := &fakeSender{}
	engine := testEngine(t, subscription.Parameters{
		RetryInterval: 10 * time.Millisecond,
		MaxQueueSize:  5,
	}, sender)

	engine.Cancel(subscription.ReasonDataNoLongerAvail)
	assert.False(t, engine.Enqueue(update("u1")))
	assert.Equal(t, uint(0), engine.QueueSize())

	// only the first cancellation reaches the counterpart
	engine.Cancel(subscription.ReasonOther)
	assert.Equal(t, []subscription.CancelReason{subscription.ReasonDataNoLongerAvail}, sender.cancelReasons())
}

func TestFailedDeliveryRetriesUntilSuccess(t *testing.T) {
	sender := &fakeSender{failures: 2}
	var attempts []bool
	var mutex sync.Mutex

	engine := testEngine(t, subscription.Parameters{
		RetryInterval: 5 * time.Millisecond,
		MaxQueueSize:  5,
	}, sender)
	engine.SetResultHandler(func(id types.SubscriptionId, delivered bool) {
		mutex.Lock()
		attempts = append(attempts, delivered)
		mutex.Unlock()
	})

	require.True(t, engine.Enqueue(update("u1")))
	require.Eventually(t, func() bool {
		return engine.QueueSize() == 0
	}, time.Second, 5*time.Millisecond)

	mutex.Lock()
	defer mutex.Unlock()
	assert.Equal(t, []bool{false, false, true}, attempts)
	assert.Equal(t, []string{"u1"}, sender.sentIds())
}

func TestAbsentParallelismLimitSerializesDeliveries(t *testing.T) {
	sender := &fakeSender{release: make(chan struct{})}
	engine := testEngine(t, subscription.Parameters{
		RetryInterval: 10 * time.Millisecond,
		MaxQueueSize:  10,
	}, sender)

	for _, id := range []string{"u1", "u2", "u3"} {
		require.True(t, engine.Enqueue(update(id)))
	}
	require.Eventually(t, func() bool {
		return sender.currentInFlight() == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, sender.peakInFlight())

	close(sender.release)
	require.Eventually(t, func() bool {
		return engine.QueueSize() == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, sender.peakInFlight())
	assert.Equal(t, []string{"u1", "u2", "u3"}, sender.sentIds())
}

func TestExplicitParallelismLimitAllowsConcurrentDeliveries(t *testing.T) {
	limit := uint(2)
	sender := &fakeSender{release: make(chan struct{})}
	engine := testEngine(t, subscription.Parameters{
		RetryInterval:    10 * time.Millisecond,
		MaxQueueSize:     10,
		ParallelismLimit: &limit,
	}, sender)

	for _, id := range []string{"u1", "u2", "u3"} {
		require.True(t, engine.Enqueue(update(id)))
	}
	require.Eventually(t, func() bool {
		return sender.currentInFlight() == 2
	}, time.Second, 5*time.Millisecond)

	close(sender.release)
	require.Eventually(t, func() bool {
		return engine.QueueSize() == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, sender.peakInFlight())
}

func TestConcurrentEnqueueAndCancel(t *testing.T) {
	sender := &fakeSender{release: make(chan struct{})}
	engine := testEngine(t, subscription.Parameters{
		RetryInterval: 10 * time.Millisecond,
		MaxQueueSize:  1000,
	}, sender)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			<-start
			for n := 0; n < 50; n++ {
				if !engine.Enqueue(update(fmt.Sprintf("u-%d-%d", worker, n))) {
					return
				}
			}
		}(worker)
	}
	close(start)
	engine.Cancel(subscription.ReasonDataNoLongerAvail)
	wg.Wait()

	// once the cancellation has happened nothing can join the queue
	sizeAfter := engine.QueueSize()
	assert.False(t, engine.Enqueue(update("late")))
	assert.Equal(t, sizeAfter, engine.QueueSize())
	assert.True(t, engine.Agreement().Cancelled())
	close(sender.release)
}

func TestCancelFiresHandlerOnce(t *testing.T) {
	sender := &fakeSender{}
	var calls int
	var mutex sync.Mutex

	engine := testEngine(t, subscription.Parameters{
		RetryInterval: 10 * time.Millisecond,
		MaxQueueSize:  5,
	}, sender)
	engine.SetCancelHandler(func(id types.SubscriptionId, reason subscription.CancelReason) {
		mutex.Lock()
		calls++
		mutex.Unlock()
	})

	engine.Cancel(subscription.ReasonOther)
	engine.Cancel(subscription.ReasonOther)

	mutex.Lock()
	defer mutex.Unlock()
	assert.Equal(t, 1, calls)
}
