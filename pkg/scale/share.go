package scale

import "github.com/google/uuid"

// Set tracks which panels currently share one vertical scale. Members are
// ordered; the first member is the anchor panel the others are scaled
// against. Membership changes always go through the Set as a whole so no
// two panels of a group can disagree about who is co-scaled.
//
// Set is not safe for concurrent use without external synchronization.
type Set struct {
	members []uuid.UUID
}

// NewSet creates a shared-scale set over the given panel ids. The first id
// becomes the anchor.
func NewSet(ids ...uuid.UUID) *Set {
	s := &Set{members: make([]uuid.UUID, 0, len(ids))}
	for _, id := range ids {
		s.Attach(id)
	}
	return s
}

// Anchor returns the panel the set is scaled against, or uuid.Nil when the
// set is empty.
func (s *Set) Anchor() uuid.UUID {
	if len(s.members) == 0 {
		return uuid.Nil
	}
	return s.members[0]
}

// Members returns the member ids in order, anchor first.
func (s *Set) Members() []uuid.UUID {
	out := make([]uuid.UUID, len(s.members))
	copy(out, s.members)
	return out
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.members) }

// Contains reports whether id is a member.
func (s *Set) Contains(id uuid.UUID) bool {
	return s.indexOf(id) >= 0
}

// Partners returns the other members id is co-scaled with. A non-member
// has no partners.
func (s *Set) Partners(id uuid.UUID) []uuid.UUID {
	if !s.Contains(id) {
		return nil
	}
	out := make([]uuid.UUID, 0, len(s.members)-1)
	for _, m := range s.members {
		if m != id {
			out = append(out, m)
		}
	}
	return out
}

// Attach adds id to the set. Attaching an existing member is a no-op.
func (s *Set) Attach(id uuid.UUID) {
	if id == uuid.Nil || s.Contains(id) {
		return
	}
	s.members = append(s.members, id)
}

// Detach removes id from the set. Removing the anchor promotes the next
// member; detaching a non-member is a no-op.
func (s *Set) Detach(id uuid.UUID) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.members = append(s.members[:i], s.members[i+1:]...)
}

// Rebase makes id the anchor, attaching it first if needed. The relative
// order of the remaining members is preserved.
func (s *Set) Rebase(id uuid.UUID) {
	if id == uuid.Nil {
		return
	}
	s.Detach(id)
	s.members = append([]uuid.UUID{id}, s.members...)
}

func (s *Set) indexOf(id uuid.UUID) int {
	for i, m := range s.members {
		if m == id {
			return i
		}
	}
	return -1
}
