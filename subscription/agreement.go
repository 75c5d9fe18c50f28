package subscription

import (
	"roamsync/ocpi/types"
	"roamsync/utility"
	"sync"
)

type Phase string

const (
	PhaseActive        Phase = "Active"
	PhaseRenegotiating Phase = "Renegotiating"
	PhaseCancelled     Phase = "Cancelled"
)

// Agreement tracks the negotiated state of one subscription. A
// proposal replaces the active parameter set wholesale when accepted
// and leaves it untouched when rejected; there is no partial
// acceptance of individual fields. Cancellation is legal from any
// phase and terminal.
type Agreement struct {
	id      types.SubscriptionId
	active  Parameters
	pending *Parameters
	phase   Phase
	reason  CancelReason
	mutex   sync.Mutex
}

// NewAgreement opens a subscription from its initial request.
func NewAgreement(id types.SubscriptionId, request Request) (*Agreement, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return &Agreement{
		id:     id,
		active: request.Parameters,
		phase:  PhaseActive,
	}, nil
}

func (a *Agreement) Id() types.SubscriptionId {
	return a.id
}

// Params returns a snapshot of the active parameter set.
func (a *Agreement) Params() Parameters {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.active
}

func (a *Agreement) Phase() Phase {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.phase
}

func (a *Agreement) Cancelled() bool {
	return a.Phase() == PhaseCancelled
}

func (a *Agreement) CancelReason() CancelReason {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.reason
}

// Propose installs a pending parameter set awaiting the counterpart's
// renegotiation reply.
func (a *Agreement) Propose(proposal Proposal) error {
	if err := proposal.Validate(); err != nil {
		return err
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.phase == PhaseCancelled {
		return utility.Err("subscription is cancelled")
	}
	pending := proposal.Parameters
	a.pending = &pending
	a.phase = PhaseRenegotiating
	return nil
}

// Renegotiate resolves a pending proposal. Accepted parameters take
// effect for subsequent deliveries; rejected parameters leave the
// previous negotiated state in force.
func (a *Agreement) Renegotiate(status RenegotiationStatus) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.phase != PhaseRenegotiating || a.pending == nil {
		return utility.Err("no proposal awaiting renegotiation")
	}
	if status == RenegotiationAccepted {
		a.active = *a.pending
	}
	a.pending = nil
	a.phase = PhaseActive
	return nil
}

// Cancel is terminal; the first reason wins and repeat calls are
// no-ops. Reports whether this call performed the transition.
func (a *Agreement) Cancel(reason CancelReason) bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.phase == PhaseCancelled {
		return false
	}
	a.phase = PhaseCancelled
	a.pending = nil
	a.reason = reason
	return true
}
