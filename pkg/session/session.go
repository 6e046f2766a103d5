package session

import (
	"path/filepath"
	"sync"
)

// State is the process-scoped memory of the last loaded rule document.
// The zero value is ready to use and safe for concurrent use.
type State struct {
	lastPath string
	mu       sync.RWMutex
}

// New creates an empty [State].
func New() *State {
	return &State{}
}

// SetLastLoaded records path as the most recently loaded rule document,
// replacing any previous value.
func (s *State) SetLastLoaded(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastPath = path
}

// LastLoaded returns the most recently loaded rule document path, and whether
// any document has been loaded.
func (s *State) LastLoaded() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastPath, s.lastPath != ""
}

// LastLoadedDir returns the parent directory of the most recently loaded rule
// document. It reports false when nothing was loaded yet.
func (s *State) LastLoadedDir() (string, bool) {
	path, ok := s.LastLoaded()
	if !ok {
		return "", false
	}

	dir := filepath.Dir(path)
	if dir == "" {
		return "", false
	}

	return dir, true
}
