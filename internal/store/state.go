package store

import (
	"encoding/json"
	"fmt"
)

// Record is one flat entry of a collection. Values keep whatever JSON type
// the client sent, so partial updates can add fields the schema never named.
type Record map[string]any

// ID returns the record's id, or "" when it is missing or not a string.
func (r Record) ID() string {
	return r.Str("id")
}

// Str returns field as a string, or "" when it is missing or not a string.
func (r Record) Str(field string) string {
	s, _ := r[field].(string)
	return s
}

// State is the whole persisted document.
type State struct {
	Shops     []Record `json:"pizzahub"`
	Pizzas    []Record `json:"pizzas"`
	Beverages []Record `json:"beverages"`
	Orders    []Record `json:"orders"`
}

// Empty returns a state with four empty collections.
func Empty() State {
	return State{
		Shops:     []Record{},
		Pizzas:    []Record{},
		Beverages: []Record{},
		Orders:    []Record{},
	}
}

// normalize replaces nil collections with empty ones so they encode as [].
func (s *State) normalize() {
	if s.Shops == nil {
		s.Shops = []Record{}
	}
	if s.Pizzas == nil {
		s.Pizzas = []Record{}
	}
	if s.Beverages == nil {
		s.Beverages = []Record{}
	}
	if s.Orders == nil {
		s.Orders = []Record{}
	}
}

// Len reports the number of records across all collections.
func (s State) Len() int {
	return len(s.Shops) + len(s.Pizzas) + len(s.Beverages) + len(s.Orders)
}

func decodeState(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return Empty(), fmt.Errorf("%w: malformed document: %v", ErrLoad, err)
	}
	s.normalize()
	return s, nil
}

// encodeState renders the document indented for operators reading the file.
func encodeState(s State) ([]byte, error) {
	s.normalize()
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode document: %v", ErrSave, err)
	}
	return b, nil
}
