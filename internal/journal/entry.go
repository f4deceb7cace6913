// Package journal persists operation outcomes to a local SQLite file so past
// sessions can be reviewed with the history command.
package journal

import "time"

// Entry is one recorded operation outcome.
type Entry struct {
	Seq       uint64    `json:"seq"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"ts"`
	Op        string    `json:"op"`
	Target    string    `json:"target"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
}
