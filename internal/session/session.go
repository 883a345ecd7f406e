// Package session holds the interaction state of one calendar session: the
// displayed month, the selected day, the task draft and the task store they
// act on. Every intent runs to completion before the next one; a Session is
// not safe for concurrent use.
package session

import (
	"log"
	"strings"

	"calnote/internal/calendar"
)

// TaskStore is the storage a session writes saved tasks to.
type TaskStore interface {
	AddTask(key, text string) error
	TasksFor(key string) ([]string, error)
	CountByKey(keys []string) (map[string]int, error)
}

type Session struct {
	store  TaskStore
	cursor calendar.Cursor

	selectedKey  string
	hasSelection bool
	draftVisible bool
	draftText    string
}

// View is what a renderer needs after each intent.
type View struct {
	Label        string
	Cursor       calendar.Cursor
	Days         []calendar.Date
	SelectedKey  string
	HasSelection bool
	DraftVisible bool
	DraftText    string
	// Tasks for the selected day; empty when nothing is selected or saved.
	Tasks []string
	// Counts maps the keys of displayed days that have tasks to their task count.
	Counts map[string]int
}

func New(store TaskStore, start calendar.Cursor) *Session {
	y, m := calendar.Normalize(start.Year, start.Month)
	return &Session{store: store, cursor: calendar.Cursor{Year: y, Month: m}}
}

// resetDraft is the single transition every selection or month change goes
// through. It hides the draft input and drops its text.
func (s *Session) resetDraft() {
	s.draftVisible = false
	s.draftText = ""
}

func (s *Session) ChangeMonth(delta int) {
	s.cursor = s.cursor.Add(delta)
	s.selectedKey = ""
	s.hasSelection = false
	s.resetDraft()
	log.Printf("session: month -> %s", s.cursor.Label())
}

// SelectDate toggles the selection of d. Dates outside the displayed month
// are ignored.
func (s *Session) SelectDate(d calendar.Date) {
	if !s.cursor.Contains(d) {
		return
	}
	key := d.Key()
	if s.hasSelection && s.selectedKey == key {
		s.selectedKey = ""
		s.hasSelection = false
	} else {
		s.selectedKey = key
		s.hasSelection = true
	}
	s.resetDraft()
	log.Printf("session: select %q (selected=%t)", key, s.hasSelection)
}

func (s *Session) BeginTask() {
	if !s.hasSelection {
		return
	}
	s.draftVisible = true
}

func (s *Session) EditDraft(text string) {
	if !s.draftVisible {
		return
	}
	s.draftText = text
}

// CancelDraft closes the draft input and keeps the selection.
func (s *Session) CancelDraft() {
	s.resetDraft()
}

// SaveTask appends the draft to the selected day. Without a selection or with
// a blank draft it does nothing. If the store fails, the draft is kept so the
// user can retry.
func (s *Session) SaveTask() error {
	if !s.hasSelection || strings.TrimSpace(s.draftText) == "" {
		return nil
	}
	if err := s.store.AddTask(s.selectedKey, s.draftText); err != nil {
		return err
	}
	log.Printf("session: saved task for %s", s.selectedKey)
	s.resetDraft()
	return nil
}

func (s *Session) Cursor() calendar.Cursor {
	return s.cursor
}

func (s *Session) View() (View, error) {
	days := s.cursor.Days()
	v := View{
		Label:        s.cursor.Label(),
		Cursor:       s.cursor,
		Days:         days,
		SelectedKey:  s.selectedKey,
		HasSelection: s.hasSelection,
		DraftVisible: s.draftVisible,
		DraftText:    s.draftText,
		Tasks:        []string{},
	}
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = d.Key()
	}
	counts, err := s.store.CountByKey(keys)
	if err != nil {
		return v, err
	}
	v.Counts = counts
	if s.hasSelection {
		tasks, err := s.store.TasksFor(s.selectedKey)
		if err != nil {
			return v, err
		}
		v.Tasks = tasks
	}
	return v, nil
}
