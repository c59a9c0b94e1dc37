package domain

import "iter"

// MergedRequirementSet maps each package key to exactly one requirement.
// It is immutable once built and iterates in first-seen key order.
type MergedRequirementSet struct {
	order []Key
	byKey map[Key]Requirement
}

// NewMergedRequirementSet builds a set from requirements in order. A repeated key
// replaces the earlier requirement but keeps its position.
func NewMergedRequirementSet(reqs ...Requirement) *MergedRequirementSet {
	s := &MergedRequirementSet{
		order: make([]Key, 0, len(reqs)),
		byKey: make(map[Key]Requirement, len(reqs)),
	}
	for _, r := range reqs {
		if _, seen := s.byKey[r.Key]; !seen {
			s.order = append(s.order, r.Key)
		}
		s.byKey[r.Key] = r
	}
	return s
}

// Len returns the number of packages in the set.
func (s *MergedRequirementSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Get returns the requirement for a key.
func (s *MergedRequirementSet) Get(k Key) (Requirement, bool) {
	if s == nil {
		return Requirement{}, false
	}
	r, ok := s.byKey[k]
	return r, ok
}

// Keys returns the package keys in first-seen order.
func (s *MergedRequirementSet) Keys() []Key {
	if s == nil {
		return nil
	}
	keys := make([]Key, len(s.order))
	copy(keys, s.order)
	return keys
}

// Requirements returns the requirements in first-seen key order.
func (s *MergedRequirementSet) Requirements() []Requirement {
	if s == nil {
		return nil
	}
	reqs := make([]Requirement, 0, len(s.order))
	for _, k := range s.order {
		reqs = append(reqs, s.byKey[k])
	}
	return reqs
}

// All iterates over the set in first-seen key order.
func (s *MergedRequirementSet) All() iter.Seq2[Key, Requirement] {
	return func(yield func(Key, Requirement) bool) {
		if s == nil {
			return
		}
		for _, k := range s.order {
			if !yield(k, s.byKey[k]) {
				return
			}
		}
	}
}
