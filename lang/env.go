package lang

// FrameID is a handle to a scope frame in an [Environment].
type FrameID int

// NoFrame is the parent handle of the global frame.
const NoFrame FrameID = -1

// frame is one level of variable bindings. A nil Value marks a name that was
// declared without an initializer.
type frame struct {
	values map[string]Value
	parent FrameID
}

// Environment is a chain of lexically nested scope frames.
//
// Frames live in an arena addressed by [FrameID] and each stores the handle
// of its enclosing frame, so there are no pointers between frames. Frames are
// created and discarded in strict last-in-first-out order, mirroring block
// entry and exit, and exactly one frame is current at any time. The global
// frame is created with the Environment and is never discarded.
type Environment struct {
	frames  []frame
	current FrameID
}

// NewEnvironment returns an Environment holding only the global frame.
func NewEnvironment() *Environment {
	env := &Environment{current: NoFrame}
	env.Push()

	return env
}

// Push creates a frame enclosed by the current one and makes it current.
func (env *Environment) Push() FrameID {
	env.frames = append(env.frames, frame{
		values: make(map[string]Value),
		parent: env.current,
	})
	env.current = FrameID(len(env.frames) - 1)

	return env.current
}

// Pop discards the current frame and restores its enclosing frame as
// current. Popping the global frame has no effect.
func (env *Environment) Pop() {
	f := env.frames[env.current]
	if f.parent == NoFrame {
		return
	}

	env.frames = env.frames[:env.current]
	env.current = f.parent
}

// Current returns the handle of the current frame.
func (env *Environment) Current() FrameID { return env.current }

// Depth returns the number of live frames, including the global frame.
func (env *Environment) Depth() int { return len(env.frames) }

// Define binds name in the current frame, replacing any binding of the same
// name in that frame and shadowing bindings in enclosing frames. A nil value
// declares name without initializing it.
func (env *Environment) Define(name string, value Value) {
	env.frames[env.current].values[name] = value
}

// Get looks name up from the current frame outward; the innermost frame
// declaring name wins. An uninitialized binding reads as [Nil]. ok is false
// if no frame in the chain declares name.
func (env *Environment) Get(name string) (v Value, ok bool) {
	id, ok := env.resolve(name)
	if !ok {
		return nil, false
	}

	v = env.frames[id].values[name]
	if v == nil {
		return Nil{}, true
	}

	return v, true
}

// Assign stores value in the innermost frame that already declares name.
// It never declares a new binding; ok is false if no frame declares name.
func (env *Environment) Assign(name string, value Value) (ok bool) {
	id, ok := env.resolve(name)
	if ok {
		env.frames[id].values[name] = value
	}

	return ok
}

// Initialized reports whether name resolves to a binding that holds a value,
// as opposed to one declared without an initializer.
func (env *Environment) Initialized(name string) bool {
	id, ok := env.resolve(name)

	return ok && env.frames[id].values[name] != nil
}

// Names returns every name visible from the current frame, innermost frame
// first and sorted within each frame. Shadowed names appear once.
func (env *Environment) Names() []string {
	seen := make(map[string]struct{})

	var names []string

	for id := env.current; id != NoFrame; id = env.frames[id].parent {
		for _, name := range sortedKeys(env.frames[id].values) {
			if _, dup := seen[name]; dup {
				continue
			}

			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}

func (env *Environment) resolve(name string) (FrameID, bool) {
	for id := env.current; id != NoFrame; id = env.frames[id].parent {
		if _, ok := env.frames[id].values[name]; ok {
			return id, true
		}
	}

	return NoFrame, false
}
