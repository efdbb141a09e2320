// Package trade defines the entry/exit events supplied alongside a time
// series for chart annotation. Events are produced elsewhere; this package
// only loads and validates them.
package trade

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Reason classifies why a trade was exited.
type Reason string

const (
	ReasonStopLoss   Reason = "stop_loss"
	ReasonTakeProfit Reason = "take_profit"
	ReasonOther      Reason = "other"
)

// Valid reports whether the reason is one of the known categories.
func (r Reason) Valid() bool {
	switch r {
	case ReasonStopLoss, ReasonTakeProfit, ReasonOther:
		return true
	}
	return false
}

// Event is a single round-trip trade: when it was entered, when and why it
// was exited, and the optional protective price levels. Events are
// read-only annotation input.
type Event struct {
	Entry      time.Time `yaml:"entry"`
	Exit       time.Time `yaml:"exit"`
	Reason     Reason    `yaml:"reason"`
	StopLoss   *float64  `yaml:"stop_loss,omitempty"`
	TakeProfit *float64  `yaml:"take_profit,omitempty"`
}

// Validate checks the event invariants.
func (e *Event) Validate() error {
	if e.Entry.IsZero() {
		return fmt.Errorf("trade: event has no entry time")
	}
	if e.Exit.IsZero() {
		return fmt.Errorf("trade: event has no exit time")
	}
	if !e.Exit.After(e.Entry) {
		return fmt.Errorf("trade: exit %s is not after entry %s",
			e.Exit.UTC().Format(time.RFC3339), e.Entry.UTC().Format(time.RFC3339))
	}
	if !e.Reason.Valid() {
		return fmt.Errorf("trade: unknown exit reason %q", e.Reason)
	}
	return nil
}

type eventFile struct {
	Events []Event `yaml:"events"`
}

// Load reads a list of events from a YAML file.
func Load(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trade: read %s: %w", path, err)
	}
	events, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("trade: %s: %w", path, err)
	}
	return events, nil
}

// Decode parses a YAML event list. Both a bare sequence and a document with
// a top-level "events" key are accepted.
func Decode(data []byte) ([]Event, error) {
	var events []Event
	if err := yaml.Unmarshal(data, &events); err != nil {
		var file eventFile
		if err2 := yaml.Unmarshal(data, &file); err2 != nil {
			return nil, fmt.Errorf("unmarshal events: %w", err)
		}
		events = file.Events
	}
	for i := range events {
		events[i].Entry = events[i].Entry.UTC()
		events[i].Exit = events[i].Exit.UTC()
		events[i].Reason = Reason(strings.TrimSpace(string(events[i].Reason)))
		if err := events[i].Validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return events, nil
}
