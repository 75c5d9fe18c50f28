package subscription

import (
	"encoding/json"
	"roamsync/utility"
	"time"
)

// Parameters is a negotiated operating parameter set for one
// subscription. An absent parallelism limit means exactly 1, not
// unlimited; the raw pointer is kept because ordering distinguishes
// absent from an explicit 1.
type Parameters struct {
	RetryInterval    time.Duration
	MaxQueueSize     uint
	ParallelismLimit *uint
}

func (p Parameters) EffectiveParallelism() uint {
	if p.ParallelismLimit == nil {
		return 1
	}
	return *p.ParallelismLimit
}

func (p Parameters) Validate() error {
	if p.RetryInterval < 0 {
		return utility.Err("retry interval must not be negative")
	}
	if p.MaxQueueSize == 0 {
		return utility.Err("max queue size must be greater than zero")
	}
	if p.ParallelismLimit != nil && *p.ParallelismLimit == 0 {
		return utility.Err("parallelism limit must be greater than zero when present")
	}
	return nil
}

// Compare orders parameter sets by retry interval, then max queue
// size, then the raw parallelism limit where absent sorts lowest and
// equals only absent.
func Compare(a, b Parameters) int {
	if a.RetryInterval != b.RetryInterval {
		if a.RetryInterval < b.RetryInterval {
			return -1
		}
		return 1
	}
	if a.MaxQueueSize != b.MaxQueueSize {
		if a.MaxQueueSize < b.MaxQueueSize {
			return -1
		}
		return 1
	}
	switch {
	case a.ParallelismLimit == nil && b.ParallelismLimit == nil:
		return 0
	case a.ParallelismLimit == nil:
		return -1
	case b.ParallelismLimit == nil:
		return 1
	case *a.ParallelismLimit < *b.ParallelismLimit:
		return -1
	case *a.ParallelismLimit > *b.ParallelismLimit:
		return 1
	}
	return 0
}

func (p Parameters) Equal(other Parameters) bool {
	return Compare(p, other) == 0
}

type paramsJSON struct {
	RetryInterval    int64 `json:"retry_interval"`
	MaxQueueSize     uint  `json:"max_queue_size"`
	ParallelismLimit *uint `json:"parallelism_limit,omitempty"`
}

func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(paramsJSON{
		RetryInterval:    int64(p.RetryInterval / time.Second),
		MaxQueueSize:     p.MaxQueueSize,
		ParallelismLimit: p.ParallelismLimit,
	})
}

func (p *Parameters) UnmarshalJSON(data []byte) error {
	var raw paramsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.RetryInterval = time.Duration(raw.RetryInterval) * time.Second
	p.MaxQueueSize = raw.MaxQueueSize
	p.ParallelismLimit = raw.ParallelismLimit
	return nil
}

// Request is the initial ask when opening a subscription.
type Request struct {
	Parameters
}

// Proposal is a mid-subscription counter-offer; either party may
// send one.
type Proposal struct {
	Parameters
}

// Response echoes only the agreed queue bound.
type Response struct {
	MaxQueueSize uint `json:"max_queue_size"`
}

// State reports the negotiated parameters plus the queue fill at one
// point in time.
type State struct {
	Parameters
	CurrentQueueSize uint
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RetryInterval    int64 `json:"retry_interval"`
		MaxQueueSize     uint  `json:"max_queue_size"`
		ParallelismLimit *uint `json:"parallelism_limit,omitempty"`
		CurrentQueueSize uint  `json:"current_queue_size"`
	}{
		RetryInterval:    int64(s.RetryInterval / time.Second),
		MaxQueueSize:     s.MaxQueueSize,
		ParallelismLimit: s.ParallelismLimit,
		CurrentQueueSize: s.CurrentQueueSize,
	})
}
