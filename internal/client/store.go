package client

import (
	"slices"
	"sync"
)

// State is the snapshot a Store holds
type State[T any] struct {
	Items   []T
	Loading bool
	Error   string
}

// ActionKind tags an Action
type ActionKind int

const (
	SetLoading ActionKind = iota
	ReplaceAll
	Add
	Update
	Remove
	SetError
)

func (k ActionKind) String() string {
	switch k {
	case SetLoading:
		return "SetLoading"
	case ReplaceAll:
		return "ReplaceAll"
	case Add:
		return "Add"
	case Update:
		return "Update"
	case Remove:
		return "Remove"
	case SetError:
		return "SetError"
	default:
		return "Unknown"
	}
}

// Action is one state transition. Only the fields its Kind uses are read.
type Action[T any] struct {
	Kind    ActionKind
	Loading bool // SetLoading
	Items   []T  // ReplaceAll
	Item    T    // Add, Update
	ID      int  // Remove
	Error   string
}

// Reducer is the pure transition function for one entity type
type Reducer[T any] struct {
	// ID extracts the identity used by Update and Remove
	ID func(T) int
	// Prepend puts added items first instead of last
	Prepend bool
}

// Reduce returns the state after a. s is never modified.
func (r Reducer[T]) Reduce(s State[T], a Action[T]) State[T] {
	switch a.Kind {
	case SetLoading:
		s.Loading = a.Loading
	case ReplaceAll:
		s.Items = slices.Clone(a.Items)
		s.Loading = false
		s.Error = ""
	case Add:
		items := make([]T, 0, len(s.Items)+1)
		if r.Prepend {
			items = append(append(items, a.Item), s.Items...)
		} else {
			items = append(append(items, s.Items...), a.Item)
		}
		s.Items = items
		s.Loading = false
		s.Error = ""
	case Update:
		id := r.ID(a.Item)
		items := slices.Clone(s.Items)
		for i := range items {
			if r.ID(items[i]) == id {
				items[i] = a.Item
			}
		}
		s.Items = items
		s.Loading = false
		s.Error = ""
	case Remove:
		s.Items = slices.DeleteFunc(slices.Clone(s.Items), func(item T) bool {
			return r.ID(item) == a.ID
		})
		s.Loading = false
		s.Error = ""
	case SetError:
		s.Error = a.Error
		s.Loading = false
	}
	return s
}

// Store holds one State and applies actions through its Reducer
type Store[T any] struct {
	reducer Reducer[T]

	mu    sync.RWMutex
	state State[T]
	subs  []func(State[T])
}

// NewStore creates an empty store
func NewStore[T any](reducer Reducer[T]) *Store[T] {
	return &Store[T]{reducer: reducer}
}

// Dispatch applies a and notifies subscribers with the new state
func (s *Store[T]) Dispatch(a Action[T]) State[T] {
	s.mu.Lock()
	s.state = s.reducer.Reduce(s.state, a)
	next := s.state
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// State returns the current snapshot
func (s *Store[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Find returns the item with id
func (s *Store[T]) Find(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.state.Items {
		if s.reducer.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Subscribe registers fn to run after every dispatch
func (s *Store[T]) Subscribe(fn func(State[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
