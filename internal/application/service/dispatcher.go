package service

import (
	"github.com/swiftpos/terminal-api/internal/domain/enum"
	"github.com/swiftpos/terminal-api/pkg/apperror"
)

// DispatchResult reports what a forwarded key event resolved to. Applied is
// false when the key is unbound, a text input had focus, or the command's
// precondition did not hold (e.g. F10 on an empty cart).
type DispatchResult struct {
	Command enum.Command `json:"command"`
	Applied bool         `json:"applied"`
	Message string       `json:"message,omitempty"`
}

// Dispatch maps a raw key event to a terminal command and executes it. The
// key bindings live here and nowhere else. Events raised while an editable
// control has focus are ignored wholesale, so typing "F3" into the paid
// amount field can never open the search modal.
func (s *PosSession) Dispatch(key string, inputFocused bool) DispatchResult {
	if inputFocused {
		return DispatchResult{Command: enum.CommandNone}
	}

	cmd := enum.CommandForKey(key)
	switch cmd {
	case enum.CommandOpenSearch:
		s.mu.Lock()
		s.searchOpen = true
		s.mu.Unlock()
		return DispatchResult{Command: cmd, Applied: true}

	case enum.CommandOpenQuantity:
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.selectedID == "" {
			return DispatchResult{Command: cmd}
		}
		s.qtyDialogOpen = true
		return DispatchResult{Command: cmd, Applied: true}

	case enum.CommandNewSale:
		if err := s.NewSale(); err != nil {
			return DispatchResult{Command: cmd, Message: err.Error()}
		}
		return DispatchResult{Command: cmd, Applied: true}

	case enum.CommandSaveSale:
		return DispatchResult{Command: cmd, Applied: true, Message: s.SaveSale()}

	case enum.CommandOpenPayment:
		if err := s.OpenPayment(); err != nil {
			if err == apperror.ErrEmptyCart {
				return DispatchResult{Command: cmd}
			}
			return DispatchResult{Command: cmd, Message: err.Error()}
		}
		return DispatchResult{Command: cmd, Applied: true}

	case enum.CommandRemoveSelected:
		s.mu.Lock()
		selected := s.selectedID
		s.mu.Unlock()
		if selected == "" {
			return DispatchResult{Command: cmd}
		}
		if err := s.RemoveItem(selected); err != nil {
			return DispatchResult{Command: cmd, Message: err.Error()}
		}
		return DispatchResult{Command: cmd, Applied: true}

	default:
		return DispatchResult{Command: enum.CommandNone}
	}
}

// CloseSearch closes the catalog/search modal.
func (s *PosSession) CloseSearch() {
	s.mu.Lock()
	s.searchOpen = false
	s.mu.Unlock()
}

// CloseQuantityDialog closes the quantity dialog.
func (s *PosSession) CloseQuantityDialog() {
	s.mu.Lock()
	s.qtyDialogOpen = false
	s.mu.Unlock()
}
