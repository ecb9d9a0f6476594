package heartbeat

import (
	"encoding/json"
	"os"
	"time"

	"camperwatch/logger"
)

// Tracker persists the timestamp of the last successfully sent message
// and decides when a liveness message is due. State is a single JSON
// object with one epoch-seconds field.
type Tracker struct {
	path     string
	interval time.Duration
	now      func() time.Time
	log      *logger.Logger
}

// record is the on-disk heartbeat state
type record struct {
	LastMessageTime float64 `json:"last_message_time"`
}

// New creates a tracker at path with the given idle threshold in days
func New(path string, days int) *Tracker {
	return &Tracker{
		path:     path,
		interval: time.Duration(days) * 24 * time.Hour,
		now:      time.Now,
		log:      logger.ForHeartbeat(),
	}
}

// Interval returns the configured idle threshold
func (t *Tracker) Interval() time.Duration {
	return t.interval
}

// Last returns the recorded time of the last sent message. ok is false
// when there is no prior record or it cannot be read.
func (t *Tracker) Last() (last time.Time, ok bool) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return time.Time{}, false
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil || r.LastMessageTime <= 0 {
		return time.Time{}, false
	}

	return time.Unix(int64(r.LastMessageTime), 0), true
}

// Touch records the current time as the last message time. Write
// failures are logged and swallowed; the message already went out and
// losing the durability write must not crash the run.
func (t *Tracker) Touch() {
	r := record{LastMessageTime: float64(t.now().Unix())}

	data, err := json.Marshal(r)
	if err != nil {
		t.log.Warn().Err(err).Msg("Could not encode heartbeat record")
		return
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		t.log.Warn().Err(err).Msg("Could not write heartbeat record")
	}
}

// Due reports whether the liveness message should be sent: a prior
// record exists and more than the idle threshold has passed since it
func (t *Tracker) Due() bool {
	last, ok := t.Last()
	if !ok {
		return false
	}
	return t.now().Sub(last) > t.interval
}
