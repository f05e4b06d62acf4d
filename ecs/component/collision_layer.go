package component

// Collision layer bits. Scenes may name additional bits in their config.
const (
	LayerDefault uint32 = 1 << iota
	LayerPlayer
	LayerEnemy
	LayerWorld
	LayerTrigger

	LayerNone uint32 = 0
	LayerAll  uint32 = 0xFFFFFFFF
)

// LayersInteract reports whether either side's mask selects the other's
// layer.
func LayersInteract(layerA, maskA, layerB, maskB uint32) bool {
	return layerA&maskB != 0 || layerB&maskA != 0
}
