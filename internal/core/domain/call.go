package domain

import "time"

// CallStatus is the lifecycle state of a call session.
type CallStatus string

const (
	CallIdle      CallStatus = "idle"
	CallRinging   CallStatus = "ringing"
	CallConnected CallStatus = "connected"
)

// validCallTransitions defines the allowed signaling transitions.
// SOS responses create a connected session directly, bypassing the
// ringing state; that path is handled by the call service, not here.
var validCallTransitions = map[CallStatus][]CallStatus{
	CallIdle:    {CallRinging},
	CallRinging: {CallConnected},
}

// CanTransitionTo reports whether moving from s to next is valid.
func (s CallStatus) CanTransitionTo(next CallStatus) bool {
	for _, allowed := range validCallTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CallSession is the ephemeral state of one call. Sessions live only
// in memory for the duration of the call and are never persisted.
type CallSession struct {
	CallerID   string     `json:"caller_id"`
	ReceiverID string     `json:"receiver_id"`
	Status     CallStatus `json:"status"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	IsSOS      bool       `json:"is_sos"`
}
