package panel

import (
	"errors"
	"sync/atomic"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

// ErrPanelNotLoaded is returned before the first panel has been stored.
var ErrPanelNotLoaded = errors.New("lender panel not loaded")

// Store holds the active lender panel. Readers always observe a complete
// panel; Swap replaces it in a single atomic step.
type Store struct {
	current atomic.Pointer[model.LenderPanel]
}

// NewStore returns a store holding initial, which may be nil.
func NewStore(initial *model.LenderPanel) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Current implements port.PanelProvider.
func (s *Store) Current() (*model.LenderPanel, error) {
	p := s.current.Load()
	if p == nil {
		return nil, ErrPanelNotLoaded
	}
	return p, nil
}

// Swap installs next and returns the panel it replaced.
func (s *Store) Swap(next *model.LenderPanel) *model.LenderPanel {
	return s.current.Swap(next)
}

// Loaded reports whether a panel is available.
func (s *Store) Loaded() bool { return s.current.Load() != nil }
