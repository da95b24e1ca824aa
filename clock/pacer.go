package clock

import "math"

// DefaultFPS is used when a pacer is asked for a non-positive rate.
const DefaultFPS = 30.0

// FramePacer throttles rendering to a desired frame rate independently of how
// often the host loop ticks.
type FramePacer struct {
	desired     float64
	interval    float64 // ms
	accumulated float64 // ms
	total       float64 // ms
	frames      int
	measured    float64
}

func NewFramePacer(desiredFPS float64) *FramePacer {
	p := &FramePacer{}
	p.SetDesiredFPS(desiredFPS)
	return p
}

// SetDesiredFPS changes the target rate. The accumulator is kept so a change
// mid-run does not drop time already counted.
func (p *FramePacer) SetDesiredFPS(fps float64) {
	if p == nil {
		return
	}
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = DefaultFPS
	}
	p.desired = fps
	p.interval = 1000 / fps
}

// Accumulate adds elapsed host time in milliseconds.
func (p *FramePacer) Accumulate(ms float64) {
	if p == nil || ms <= 0 {
		return
	}
	p.accumulated += ms
	p.total += ms
}

// ShouldRender reports whether a frame boundary has passed. On true, the
// overshoot beyond whole intervals stays in the accumulator.
func (p *FramePacer) ShouldRender() bool {
	if p == nil || p.accumulated <= p.interval {
		return false
	}

	p.accumulated = math.Mod(p.accumulated, p.interval)
	p.frames++
	p.measured = math.Round(1000/(p.total/float64(p.frames))*100) / 100
	return true
}

func (p *FramePacer) DesiredFPS() float64 { return p.desired }

// Interval is the frame interval in milliseconds.
func (p *FramePacer) Interval() float64 { return p.interval }

func (p *FramePacer) Accumulated() float64 { return p.accumulated }

func (p *FramePacer) FrameCount() int { return p.frames }

// MeasuredFPS is the rendered frame rate over the pacer's lifetime, rounded to
// two decimals.
func (p *FramePacer) MeasuredFPS() float64 { return p.measured }
