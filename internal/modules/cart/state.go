package cart

import "sync"

// Line is one cart entry; a product appears at most once.
type Line struct {
	ProductID string `json:"productId"`
	Qty       int64  `json:"qty"`
}

// State is the standing cart of the single counter session, plus the client
// the sale will be attributed to. It lives in process memory only and is
// cleared when a cart sale commits.
type State struct {
	mu       sync.Mutex
	lines    []Line
	clientID string
}

// NewState returns an empty cart.
func NewState() *State { return &State{} }

// Add puts one unit of the product in the cart, merging with an existing line.
func (s *State) Add(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Qty++
			return
		}
	}
	s.lines = append(s.lines, Line{ProductID: productID, Qty: 1})
}

// SetQty sets the quantity for a product; zero or less removes the line.
func (s *State) SetQty(productID string, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		kept := s.lines[:0]
		for _, l := range s.lines {
			if l.ProductID != productID {
				kept = append(kept, l)
			}
		}
		s.lines = kept
		return
	}
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Qty = qty
			return
		}
	}
	s.lines = append(s.lines, Line{ProductID: productID, Qty: qty})
}

// Lines returns a copy of the current cart lines.
func (s *State) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Clear empties the cart and drops the client selection.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.clientID = ""
}

// SelectClient attributes the next cart sale to the given client; an empty
// id deselects.
func (s *State) SelectClient(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientID = id
}

// SelectedClient returns the id of the selected client, if any.
func (s *State) SelectedClient() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientID
}
