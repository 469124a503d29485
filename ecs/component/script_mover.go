package component

// ScriptMover drives an entity's transform from a tengo script in
// prefabs/scripts.
type ScriptMover struct {
	Script  string
	Elapsed float64
	// Disabled is set when the script fails to compile or run.
	Disabled bool
}

var ScriptMoverComponent = NewComponent[ScriptMover]()
