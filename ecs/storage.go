package ecs

// entityStore allocates ids monotonically and keeps the live set in creation
// order. Ids are never recycled, so a stale id can never alias a newer entity.
type entityStore struct {
	nextID int
	alive  []bool
	live   []Entity
}

func (s *entityStore) create() Entity {
	if s == nil {
		return 0
	}
	s.nextID++
	id := s.nextID
	for len(s.alive) < id {
		s.alive = append(s.alive, false)
	}
	s.alive[id-1] = true
	e := Entity(id)
	s.live = append(s.live, e)
	return e
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.alive[e.id()-1] = false
	for i, le := range s.live {
		if le == e {
			// shift rather than swap so creation order survives
			copy(s.live[i:], s.live[i+1:])
			s.live = s.live[:len(s.live)-1]
			break
		}
	}
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || !e.Valid() || e.id() > len(s.alive) {
		return false
	}
	return s.alive[e.id()-1]
}

func (s *entityStore) entities() []Entity {
	if s == nil || len(s.live) == 0 {
		return nil
	}
	out := make([]Entity, len(s.live))
	copy(out, s.live)
	return out
}

func (s *entityStore) count() int {
	if s == nil {
		return 0
	}
	return len(s.live)
}
