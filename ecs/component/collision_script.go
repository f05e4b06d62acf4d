package component

// CollisionScript binds a tengo script to the entity's Collider callbacks.
// The script must define onEnter, onStay and onExit, each taking
// (self, other).
type CollisionScript struct {
	Path string
}

var CollisionScriptComponent = NewComponent[CollisionScript]()
