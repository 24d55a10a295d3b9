// Package activity keeps a local history of changes to favorites and the
// cart, whether they were made from the CLI or the shop TUI.
package activity

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Annotation marks a cobra command whose runs are recorded. The value is
// the action name stored in Entry.Action.
const Annotation = "pokeshop/activity"

// Entry is one recorded change.
type Entry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	Origin     string    `json:"origin"`
	ItemID     int       `json:"item_id,omitempty"`
	ItemName   string    `json:"item_name,omitempty"`
	Qty        int       `json:"qty,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}

// Origins of an entry.
const (
	OriginCLI  = "cli"
	OriginShop = "shop"
)

// Finish fills Outcome, Detail and DurationMs from err and start.
func (e *Entry) Finish(start time.Time, err error) {
	e.Timestamp = start.UTC()
	e.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		e.Outcome = OutcomeError
		e.Detail = err.Error()
		return
	}
	e.Outcome = OutcomeSuccess
}
