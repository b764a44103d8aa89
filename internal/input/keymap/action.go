package keymap

// Action is a named handler bindings refer to.
//
// Handler is opaque to the registry; the mode layer asserts it to its own
// function type when a binding matches.
type Action struct {
	ID          string
	Description string
	Handler     any
}

// NewAction creates an action.
func NewAction(id, description string, handler any) Action {
	return Action{ID: id, Description: description, Handler: handler}
}
