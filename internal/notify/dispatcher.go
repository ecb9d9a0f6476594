package notify

import (
	"context"

	"camperwatch/internal/heartbeat"
	"camperwatch/logger"
)

// Result is the outcome of one send to one chat
type Result struct {
	Chat     string
	OK       bool
	Response string
	Err      error
}

// Dispatcher fans a message out to every configured chat and records
// the heartbeat when at least one delivery succeeds. Fan-out is
// sequential; the destination count is small.
type Dispatcher struct {
	sender  Sender
	chats   []string
	tracker *heartbeat.Tracker
	log     *logger.Logger
}

// NewDispatcher creates a dispatcher. tracker may be nil when no
// heartbeat state should be recorded.
func NewDispatcher(sender Sender, chats []string, tracker *heartbeat.Tracker) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		chats:   chats,
		tracker: tracker,
		log:     logger.ForNotifier(),
	}
}

// Enabled reports whether there is anything to dispatch to
func (d *Dispatcher) Enabled() bool {
	return d != nil && d.sender != nil && len(d.chats) > 0
}

// ChatCount returns the number of configured chats
func (d *Dispatcher) ChatCount() int {
	return len(d.chats)
}

// SendToAll sends text to every chat in order and returns per-chat
// results. A single chat failure never aborts the fan-out.
func (d *Dispatcher) SendToAll(ctx context.Context, text string) []Result {
	if !d.Enabled() {
		return nil
	}

	results := make([]Result, 0, len(d.chats))
	anyOK := false
	for _, chat := range d.chats {
		resp, err := d.sender.Send(ctx, chat, text)
		ok := err == nil
		if ok {
			anyOK = true
		} else {
			d.log.Warn().Str("chat", chat).Err(err).Msg("Send failed")
		}
		results = append(results, Result{Chat: chat, OK: ok, Response: resp, Err: err})
	}

	if anyOK && d.tracker != nil {
		d.tracker.Touch()
	}

	return results
}

// DeliveredToAll reports whether every configured chat acknowledged the
// send. Only then may an offer be marked seen.
func (d *Dispatcher) DeliveredToAll(results []Result) bool {
	return len(d.chats) > 0 && SuccessCount(results) == len(d.chats)
}

// SuccessCount counts the successful sends in a result list
func SuccessCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.OK {
			n++
		}
	}
	return n
}
