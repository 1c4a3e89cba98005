package terminal

import (
	"fmt"
	"sync"
)

// Status gates the input line
type Status string

const (
	StatusBooting    Status = "BOOTING"
	StatusReady      Status = "READY"
	StatusProcessing Status = "PROCESSING"
	// StatusError is declared for parity with the status enumeration but no
	// transition ever enters it.
	StatusError Status = "ERROR"
)

// View identifies the content panel currently shown
type View string

const (
	ViewDashboard View = "dashboard"
	ViewITWork    View = "it-work"
	ViewWebDev    View = "web-dev"
	ViewSecurity  View = "security"
)

// Views lists every known view in display order
var Views = []View{ViewDashboard, ViewITWork, ViewWebDev, ViewSecurity}

// ParseView converts a view name into a View
func ParseView(name string) (View, error) {
	for _, v := range Views {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view: %q", name)
}

// Session is the state container shared by the interpreter and the
// presentation layer. Every mutation is serialized by the session mutex and
// followed by a change notification.
type Session struct {
	store *Store

	mu        sync.RWMutex
	view      View
	status    Status
	navSerial uint64
	listeners []func()
}

// NewSession creates a session in the BOOTING state on the dashboard
func NewSession(store *Store) *Session {
	if store == nil {
		store = NewStore()
	}
	return &Session{
		store:  store,
		view:   ViewDashboard,
		status: StatusBooting,
	}
}

// OnChange registers fn to run after every state or log mutation. Listeners
// run on the goroutine that caused the change, outside the session lock.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// Append adds an entry to the log
func (s *Session) Append(content string, category Category) {
	s.store.Append(content, category)
	s.notify()
}

// Clear wipes the log
func (s *Session) Clear() {
	s.store.Clear()
	s.notify()
}

// Entries returns a snapshot of the log
func (s *Session) Entries() []Entry {
	return s.store.All()
}

// View returns the current view
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView switches the current view
func (s *Session) SetView(v View) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	s.notify()
}

// Status returns the current status
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetStatus moves the session to status st
func (s *Session) SetStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
	s.notify()
}

// navigate records a navigation and returns its serial number
func (s *Session) navigate(v View, switchView bool) uint64 {
	s.mu.Lock()
	s.navSerial++
	serial := s.navSerial
	if switchView {
		s.view = v
	}
	s.mu.Unlock()
	s.notify()
	return serial
}

// navigationSerial reports how many navigations have happened
func (s *Session) navigationSerial() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.navSerial
}
