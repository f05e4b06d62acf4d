package prefabs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/collide/ecs/component"
	"gopkg.in/yaml.v3"
)

// SceneSpec is a scene file: named layers, a timestep, and the entities to
// spawn.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	Timestep float64           `yaml:"timestep"`
	Layers   map[string]uint32 `yaml:"layers"`
	Entities []EntitySpec      `yaml:"entities"`
}

type EntitySpec struct {
	Name      string         `yaml:"name"`
	Transform *TransformSpec `yaml:"transform"`
	Collider  *ColliderSpec  `yaml:"collider"`
	Velocity  *VelocitySpec  `yaml:"velocity"`
	Script    string         `yaml:"script"`
	TTL       int            `yaml:"ttl"`
}

type TransformSpec struct {
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	ScaleX   *float64 `yaml:"scale_x"`
	ScaleY   *float64 `yaml:"scale_y"`
	Rotation float64  `yaml:"rotation"`
}

// ColliderSpec mirrors component.Collider. Width/Height are the full box size;
// circles use Radius. Layer and Mask list layer names or numeric bits.
type ColliderSpec struct {
	Shape   string   `yaml:"shape"`
	Width   float64  `yaml:"width"`
	Height  float64  `yaml:"height"`
	Radius  float64  `yaml:"radius"`
	OffsetX float64  `yaml:"offset_x"`
	OffsetY float64  `yaml:"offset_y"`
	Layer   []string `yaml:"layer"`
	Mask    []string `yaml:"mask"`
	Trigger bool     `yaml:"trigger"`
	Static  bool     `yaml:"static"`
}

type VelocitySpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

var builtinLayers = map[string]uint32{
	"default": component.LayerDefault,
	"player":  component.LayerPlayer,
	"enemy":   component.LayerEnemy,
	"world":   component.LayerWorld,
	"trigger": component.LayerTrigger,
	"none":    component.LayerNone,
	"all":     component.LayerAll,
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScene loads and validates a scene by file name.
func LoadScene(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// ParseScene decodes and validates scene YAML.
func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %w", err)
	}
	return &spec, nil
}

// Validate checks shapes, sizes and layer names.
func (s *SceneSpec) Validate() error {
	if s.Timestep < 0 {
		return fmt.Errorf("scene %q: negative timestep", s.Name)
	}
	for i, e := range s.Entities {
		if e.TTL < 0 {
			return fmt.Errorf("entity %d (%s): negative ttl", i, e.Name)
		}
		c := e.Collider
		if c == nil {
			continue
		}
		if _, err := c.ShapeKind(); err != nil {
			return fmt.Errorf("entity %d (%s): %w", i, e.Name, err)
		}
		if c.Width < 0 || c.Height < 0 || c.Radius < 0 {
			return fmt.Errorf("entity %d (%s): negative collider size", i, e.Name)
		}
		if _, err := s.LayerBits(c.Layer); err != nil {
			return fmt.Errorf("entity %d (%s): layer: %w", i, e.Name, err)
		}
		if _, err := s.LayerBits(c.Mask); err != nil {
			return fmt.Errorf("entity %d (%s): mask: %w", i, e.Name, err)
		}
	}
	return nil
}

// LayerBits ORs named or numeric layers together. Scene layers shadow the
// built-in names.
func (s *SceneSpec) LayerBits(names []string) (uint32, error) {
	var bits uint32
	for _, raw := range names {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if v, ok := s.Layers[trimmed]; ok {
			bits |= v
			continue
		}
		name := strings.ToLower(trimmed)
		if v, ok := builtinLayers[name]; ok {
			bits |= v
			continue
		}
		n, err := strconv.ParseUint(name, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("unknown layer %q", raw)
		}
		bits |= uint32(n)
	}
	return bits, nil
}

// LayerNames returns the scene's declared layer names, sorted.
func (s *SceneSpec) LayerNames() []string {
	names := make([]string, 0, len(s.Layers))
	for n := range s.Layers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ShapeKind maps the shape string onto a collider shape; empty means box.
func (c *ColliderSpec) ShapeKind() (component.ColliderShape, error) {
	switch strings.ToLower(strings.TrimSpace(c.Shape)) {
	case "", "box", "aabb":
		return component.ShapeBox, nil
	case "circle":
		return component.ShapeCircle, nil
	default:
		return 0, fmt.Errorf("unknown collider shape %q", c.Shape)
	}
}
