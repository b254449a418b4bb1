// Package session keys live wizards by an opaque session identifier so the
// stateless HTTP surface can route each request to its own flow. One wizard
// exists per session.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/flutterdev77/purple-bank-transfer/internal/usecase/service_interfaces"
)

type Store struct {
	mu        sync.Mutex
	wizards   map[string]service_interfaces.WizardService
	newWizard func() service_interfaces.WizardService
}

func NewStore(newWizard func() service_interfaces.WizardService) *Store {
	return &Store{
		wizards:   make(map[string]service_interfaces.WizardService),
		newWizard: newWizard,
	}
}

func (s *Store) Create() (string, service_interfaces.WizardService) {
	wizard := s.newWizard()
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizards[id] = wizard
	return id, wizard
}

func (s *Store) Get(id string) (service_interfaces.WizardService, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wizard, ok := s.wizards[id]
	return wizard, ok
}

// Delete closes the session's wizard before dropping it, so an in-flight
// submission that resolves later is discarded instead of mutating state.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	wizard, ok := s.wizards[id]
	delete(s.wizards, id)
	s.mu.Unlock()

	if ok {
		wizard.Close()
	}
}
