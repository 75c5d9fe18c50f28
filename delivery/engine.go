package delivery

import (
	"context"
	"fmt"
	"roamsync/ocpi/types"
	"roamsync/subscription"
	"sync"
	"time"
)

const featureName = "Delivery"

const sendTimeout = 30 * time.Second

// LogHandler is the slice of the application logger the engine needs.
type LogHandler interface {
	FeatureEvent(feature, id, text string)
	Warn(text string)
	Error(text string, err error)
}

// Engine drains the bounded update queue of one subscription. One
// drain goroutine runs per subscription so engines never contend
// with each other; the negotiated parallelism limit bounds in-flight
// delivery attempts within a single subscription only.
//
// Retry backoff is fixed: every failed attempt waits exactly the
// negotiated retry interval before the next one. The interval is the
// only pacing the protocol negotiates, so the engine never outpaces
// what the receiver asked for.
type Engine struct {
	agreement *subscription.Agreement
	sender    Sender
	log       LogHandler
	onCancel  func(id types.SubscriptionId, reason subscription.CancelReason)
	onResult  func(id types.SubscriptionId, delivered bool)

	mutex    sync.Mutex
	queue    []Update
	inFlight uint
	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewEngine(agreement *subscription.Agreement, sender Sender, log LogHandler) *Engine {
	return &Engine{
		agreement: agreement,
		sender:    sender,
		log:       log,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// SetCancelHandler attaches a callback fired once when the
// subscription transitions to cancelled.
func (e *Engine) SetCancelHandler(handler func(id types.SubscriptionId, reason subscription.CancelReason)) {
	e.onCancel = handler
}

// SetResultHandler attaches a callback fired per delivery attempt.
func (e *Engine) SetResultHandler(handler func(id types.SubscriptionId, delivered bool)) {
	e.onResult = handler
}

func (e *Engine) Agreement() *subscription.Agreement {
	return e.agreement
}

func (e *Engine) Start() {
	go e.run()
}

// QueueSize counts undelivered updates: queued ones plus those taken
// for delivery but not yet acknowledged.
func (e *Engine) QueueSize() uint {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return uint(len(e.queue)) + e.inFlight
}

func (e *Engine) State() subscription.State {
	return subscription.State{
		Parameters:       e.agreement.Params(),
		CurrentQueueSize: e.QueueSize(),
	}
}

// Enqueue appends an update to the subscription queue. The cancelled
// check, the size check and the append happen under one lock, the
// same lock Cancel transitions under, so an update can never land in
// the queue after the drain loop has been told to stop and the queue
// can never exceed the negotiated bound. An enqueue that would exceed
// it cancels the subscription with QUEUE_OVERFLOW instead.
func (e *Engine) Enqueue(update Update) bool {
	e.mutex.Lock()
	if e.agreement.Cancelled() {
		e.mutex.Unlock()
		return false
	}
	params := e.agreement.Params()
	if uint(len(e.queue))+e.inFlight >= params.MaxQueueSize {
		e.mutex.Unlock()
		e.Cancel(subscription.ReasonQueueOverflow)
		return false
	}
	e.queue = append(e.queue, update)
	e.mutex.Unlock()
	e.signal()
	return true
}

// Cancel terminates the subscription. In-flight attempts finish or
// abandon on their own; no new delivery or retry is scheduled after
// the transition. The counterpart is informed once.
func (e *Engine) Cancel(reason subscription.CancelReason) {
	e.mutex.Lock()
	performed := e.agreement.Cancel(reason)
	if performed {
		e.stopOnce.Do(func() { close(e.done) })
	}
	e.mutex.Unlock()
	if !performed {
		return
	}
	e.log.FeatureEvent(featureName, e.agreement.Id().String(), fmt.Sprintf("subscription cancelled: %s", reason))
	if e.onCancel != nil {
		e.onCancel(e.agreement.Id(), reason)
	}

	ctx, cancelCtx := context.WithTimeout(context.Background(), sendTimeout)
	defer cancelCtx()
	if err := e.sender.SendCancel(ctx, subscription.Cancellation{Reason: reason}); err != nil {
		e.log.Error(fmt.Sprintf("subscription %s: sending cancellation", e.agreement.Id()), err)
	}
}

func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) run() {
	for {
		select {
		case <-e.done:
			return
		default:
		}
		update, ok := e.take()
		if !ok {
			select {
			case <-e.wake:
			case <-e.done:
				return
			}
			continue
		}
		go e.deliver(update)
	}
}

// take pops the head of the queue when a delivery slot is free.
func (e *Engine) take() (Update, bool) {
	params := e.agreement.Params()
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if len(e.queue) == 0 || e.inFlight >= params.EffectiveParallelism() {
		return Update{}, false
	}
	update := e.queue[0]
	e.queue = e.queue[1:]
	e.inFlight++
	return update, true
}

func (e *Engine) deliver(update Update) {
	defer func() {
		e.mutex.Lock()
		e.inFlight--
		e.mutex.Unlock()
		e.signal()
	}()

	for {
		ctx, cancelCtx := context.WithTimeout(context.Background(), sendTimeout)
		err := e.sender.Send(ctx, update)
		cancelCtx()
		if err == nil {
			if e.onResult != nil {
				e.onResult(e.agreement.Id(), true)
			}
			return
		}
		if e.onResult != nil {
			e.onResult(e.agreement.Id(), false)
		}
		e.log.Warn(fmt.Sprintf("subscription %s: delivery of %s failed: %s", e.agreement.Id(), update.Id, err))

		params := e.agreement.Params()
		select {
		case <-time.After(params.RetryInterval):
		case <-e.done:
			return
		}
		if e.agreement.Cancelled() {
			return
		}
	}
}
