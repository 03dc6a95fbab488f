// Package events holds the presentation log and single-pass game event
// dispatch. Event handlers produce additional changes but do not recurse.
package events

import (
	"time"

	"github.com/nathoo/scrapcore/types"
)

// Game event types emitted by the resolvers.
const (
	BossDefeated  = "boss_defeated"
	EnemyDefeated = "enemy_defeated"
	BotRecruited  = "bot_recruited"
	BotDefeated   = "bot_defeated"
	LevelUp       = "level_up"
	QuestAdvanced = "quest_advanced"
	RunEnded      = "run_ended"
)

// DefaultHistory is how many entries a Log keeps for the observable combat log.
const DefaultHistory = 200

// Log allocates monotonic ids to presentation entries. Entries written
// since the last Begin form the current command's output; the most recent
// entries across commands are kept as history.
type Log struct {
	nextID  int64
	at      time.Duration
	current []types.LogEntry
	history []types.LogEntry
	limit   int
}

// NewLog creates an empty log that keeps up to limit history entries.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultHistory
	}
	return &Log{nextID: 1, limit: limit}
}

// Begin starts the output of a new command at delay offset zero.
func (l *Log) Begin() {
	l.current = nil
	l.at = 0
}

// At moves the delay offset for subsequent entries. Offsets never go back.
func (l *Log) At(d time.Duration) {
	if d > l.at {
		l.at = d
	}
}

// Offset is the current delay offset.
func (l *Log) Offset() time.Duration { return l.at }

// Add appends an entry at the current offset.
func (l *Log) Add(msg string, sev types.Severity) {
	e := types.LogEntry{ID: l.nextID, Message: msg, Severity: sev, Delay: l.at}
	l.nextID++
	l.current = append(l.current, e)
	l.history = append(l.history, e)
	if over := len(l.history) - l.limit; over > 0 {
		l.history = append(l.history[:0], l.history[over:]...)
	}
}

// Current returns the entries written since Begin.
func (l *Log) Current() []types.LogEntry {
	return append([]types.LogEntry(nil), l.current...)
}

// History returns the retained entries, oldest first.
func (l *Log) History() []types.LogEntry {
	return append([]types.LogEntry(nil), l.history...)
}

// Handler reacts to one event type. When may be nil.
type Handler struct {
	EventType string
	When      func(p *types.Player) bool
	Apply     func(p *types.Player, ev types.Event, log *Log)
}

// Dispatch runs handlers against the emitted events. Single pass, no
// recursion: events raised while handling are not dispatched again.
// Returns the number of handlers that fired.
func Dispatch(evs []types.Event, p *types.Player, handlers []Handler, log *Log) int {
	fired := 0
	for _, ev := range evs {
		for _, h := range handlers {
			if h.EventType != ev.Type {
				continue
			}
			if h.When != nil && !h.When(p) {
				continue
			}
			h.Apply(p, ev, log)
			fired++
		}
	}
	return fired
}
