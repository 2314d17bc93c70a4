// Package audio provides the playback clock the timing core samples,
// and duration probing of the audio source. The core never inspects
// audio samples; it only needs a monotonic position while playing plus
// seek and play/pause.
package audio

import "time"

// Transport is a wall-clock-backed playback position register. Callers
// pull the position once per render frame via Now.
type Transport struct {
	playing  bool
	pos      float64   // position at the last play/pause/seek
	resumed  time.Time // wall time of the last play
	duration float64   // 0 means unknown, seeking is then unbounded
}

// NewTransport creates a paused transport at position zero.
func NewTransport(duration float64) *Transport {
	if duration < 0 {
		duration = 0
	}
	return &Transport{duration: duration}
}

// Now returns the current playback position in seconds.
func (t *Transport) Now() float64 {
	if !t.playing {
		return t.pos
	}
	return t.clamp(t.pos + time.Since(t.resumed).Seconds())
}

// Playing reports whether the clock is advancing.
func (t *Transport) Playing() bool { return t.playing }

// Duration returns the probed track length, 0 when unknown.
func (t *Transport) Duration() float64 { return t.duration }

// Play starts the clock.
func (t *Transport) Play() {
	if t.playing {
		return
	}
	t.playing = true
	t.resumed = time.Now()
}

// Pause freezes the clock at the current position.
func (t *Transport) Pause() {
	if !t.playing {
		return
	}
	t.pos = t.Now()
	t.playing = false
}

// Toggle flips between playing and paused.
func (t *Transport) Toggle() {
	if t.playing {
		t.Pause()
	} else {
		t.Play()
	}
}

// SeekTo jumps to the given position, clamped to the track bounds.
// Play state is preserved.
func (t *Transport) SeekTo(sec float64) {
	t.pos = t.clamp(sec)
	if t.playing {
		t.resumed = time.Now()
	}
}

func (t *Transport) clamp(sec float64) float64 {
	if sec < 0 {
		return 0
	}
	if t.duration > 0 && sec > t.duration {
		return t.duration
	}
	return sec
}
