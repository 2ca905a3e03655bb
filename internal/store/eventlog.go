package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const eventsFileName = "events.jsonl"

// Event is one recorded mutation intent: who did what to which entity.
// The log is append-only and doubles as the audit trail.
type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	ActorID  string    `json:"actorId"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload,omitempty"`
}

func (s Store) eventsPath() string {
	return filepath.Join(filepath.Clean(s.Dir), eventsFileName)
}

// AppendEvent appends one JSONL event line. Failures here must not mask a
// successful state save, so callers typically log-and-continue.
func (s Store) AppendEvent(actorID, typ, entityID string, payload any) error {
	actorID = strings.TrimSpace(actorID)
	typ = strings.TrimSpace(typ)
	entityID = strings.TrimSpace(entityID)
	if typ == "" {
		return errors.New("event: missing type")
	}
	if entityID == "" {
		return errors.New("event: missing entity id")
	}
	if err := s.Ensure(); err != nil {
		return err
	}

	id, err := newRandomID("evt")
	if err != nil {
		id = fmt.Sprintf("evt-%d", time.Now().UnixNano())
	}
	ev := Event{
		ID:       id,
		TS:       time.Now().UTC(),
		ActorID:  actorID,
		Type:     typ,
		EntityID: entityID,
		Payload:  payload,
	}
	line, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.eventsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

// ReadEvents returns the full event log in append order. A missing log is
// an empty history, not an error.
func (s Store) ReadEvents() ([]Event, error) {
	f, err := os.Open(s.eventsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Event{}, nil
		}
		return nil, err
	}
	defer f.Close()

	out := []Event{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("events.jsonl: %w", err)
		}
		out = append(out, ev)
	}
	return out, sc.Err()
}
