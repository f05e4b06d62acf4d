package component

// Name labels an entity for logs and debug output.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
