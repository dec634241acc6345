package meals

import (
	"sync"

	"go.uber.org/zap"
)

// SavedStore persists saved meals between sessions.
type SavedStore interface {
	Load() ([]Meal, error)
	Put(Meal) error
	Delete(id string) error
}

// SavedList is the session-wide set of saved meals, keyed by Meal.ID and kept
// in the order meals were saved. Every store that can save or unsave shares
// one list by pointer.
type SavedList struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Meal

	store SavedStore
	log   *zap.Logger
}

// NewSavedList returns an empty list that lives only in memory.
func NewSavedList() *SavedList {
	return &SavedList{byID: make(map[string]Meal), log: zap.NewNop()}
}

// OpenSavedList loads the list from store and writes every later change
// through to it. Write failures are logged; the in-memory list stays
// authoritative for the session.
func OpenSavedList(store SavedStore, log *zap.Logger) (*SavedList, error) {
	l := NewSavedList()
	if log != nil {
		l.log = log
	}
	if store == nil {
		return l, nil
	}
	saved, err := store.Load()
	if err != nil {
		return nil, err
	}
	for _, m := range saved {
		l.add(m)
	}
	l.store = store
	return l, nil
}

// Save adds the meal or refreshes its record when already saved.
func (l *SavedList) Save(m Meal) {
	l.mu.Lock()
	l.add(m)
	l.mu.Unlock()

	if l.store != nil {
		if err := l.store.Put(m); err != nil {
			l.log.Warn("persist saved meal failed", zap.String("id", m.ID), zap.Error(err))
		}
	}
}

// Unsave removes the meal. Unsaving a meal that is not saved does nothing.
func (l *SavedList) Unsave(m Meal) {
	l.mu.Lock()
	_, ok := l.byID[m.ID]
	if ok {
		delete(l.byID, m.ID)
		for i, id := range l.order {
			if id == m.ID {
				l.order = append(l.order[:i:i], l.order[i+1:]...)
				break
			}
		}
	}
	l.mu.Unlock()

	if ok && l.store != nil {
		if err := l.store.Delete(m.ID); err != nil {
			l.log.Warn("delete saved meal failed", zap.String("id", m.ID), zap.Error(err))
		}
	}
}

// IsSaved reports whether a meal with the same ID is saved.
func (l *SavedList) IsSaved(m Meal) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.byID[m.ID]
	return ok
}

// Lookup returns the saved record for id.
func (l *SavedList) Lookup(id string) (Meal, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.byID[id]
	return m, ok
}

// List returns a copy of the saved meals in save order.
func (l *SavedList) List() []Meal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.order) == 0 {
		return nil
	}
	out := make([]Meal, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// Len returns the number of saved meals.
func (l *SavedList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

// add must be called with mu held or before the list is shared.
func (l *SavedList) add(m Meal) {
	if _, ok := l.byID[m.ID]; !ok {
		l.order = append(l.order, m.ID)
	}
	l.byID[m.ID] = m
}
