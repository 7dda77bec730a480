package changes

// Host receives the signals the engine emits after an undo.
type Host interface {
	// Persist asks the host to save current state. Fire and forget.
	Persist()
	// SetClean flips the session dirty/clean flag.
	SetClean(clean bool)
	// CloseDrawer dismisses any open change-review panel.
	CloseDrawer()
}

// NopHost ignores every signal.
type NopHost struct{}

func (NopHost) Persist() {}
func (NopHost) SetClean(bool) {}
func (NopHost) CloseDrawer() {}
