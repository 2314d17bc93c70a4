package app

// FrameTickMsg drives the render loop: each tick samples the transport
// clock and recomputes the active-line selection.
type FrameTickMsg struct{}

// SavedMsg reports the result of an autosave checkpoint.
type SavedMsg struct {
	Err error
}

// CopiedMsg reports the result of copying the LRC export to the
// clipboard.
type CopiedMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
