package player

// Eligibility decides whether playback is currently allowed. The runtime has
// no notion of the host going to the background, so the host pauses it when
// playback stops being eligible.
type Eligibility struct {
	hostVisible       bool
	backgroundAllowed bool
}

// NewEligibility returns the state of a visible host without background playback.
func NewEligibility() Eligibility {
	return Eligibility{hostVisible: true}
}

// IsEligible reports whether playback is allowed.
func (e Eligibility) IsEligible() bool {
	return e.hostVisible || e.backgroundAllowed
}

// HostVisible reports whether the host is in the foreground.
func (e Eligibility) HostVisible() bool {
	return e.hostVisible
}

// BackgroundAllowed reports whether the host opted in to background playback.
func (e Eligibility) BackgroundAllowed() bool {
	return e.backgroundAllowed
}

// SetHostVisible records a foreground or background transition.
func (e *Eligibility) SetHostVisible(visible bool) {
	e.hostVisible = visible
}

// SetBackgroundAllowed records the background playback opt-in.
func (e *Eligibility) SetBackgroundAllowed(allowed bool) {
	e.backgroundAllowed = allowed
}
