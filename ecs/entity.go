package ecs

import "strconv"

// Entity is an opaque identifier. Ids are allocated from 1 upward and are
// never reused; 0 is never a live entity.
type Entity uint32

func (e Entity) id() int {
	return int(e)
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}
