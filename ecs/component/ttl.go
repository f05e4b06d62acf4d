package component

// TTL is a frame-based time-to-live. The entity is destroyed on the tick its
// remaining frame count reaches zero.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
