package anim

import (
	"slices"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultPhaseDuration is the length of one priority phase in seconds.
const DefaultPhaseDuration float32 = 0.3

var easings = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-out-quad":    ease.InOutQuad,
	"out-quad":       ease.OutQuad,
	"in-out-cubic":   ease.InOutCubic,
	"out-cubic":      ease.OutCubic,
	"out-back":       ease.OutBack,
	"in-out-sine":    ease.InOutSine,
	"out-expo":       ease.OutExpo,
	"out-bounce":     ease.OutBounce,
	"in-out-elastic": ease.InOutElastic,
}

// Easing returns the easing function registered under name.
func Easing(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[strings.ToLower(name)]
	return fn, ok
}

// track drives one task with one tween per vector component.
type track struct {
	task   int
	tweens []*gween.Tween
}

// Player interpolates tasks phase by phase. It does not own a clock; the
// caller advances it with Update.
type Player struct {
	tasks  []Task
	values [][]float64
	phases [][]track
	phase  int
}

// NewPlayer prepares tasks for playback. Phases play in ascending priority
// whatever the order of tasks. Each phase lasts duration seconds and uses
// fn; a nil fn means linear.
func NewPlayer(tasks []Task, duration float32, fn ease.TweenFunc) *Player {
	if fn == nil {
		fn = ease.Linear
	}
	if duration <= 0 {
		duration = DefaultPhaseDuration
	}

	p := &Player{tasks: tasks, values: make([][]float64, len(tasks))}
	byPhase := map[Priority][]track{}
	var order []Priority
	for i, t := range tasks {
		p.values[i] = append([]float64(nil), t.Start...)
		tr := track{task: i, tweens: make([]*gween.Tween, len(t.Start))}
		for j := range t.Start {
			tr.tweens[j] = gween.New(float32(t.Start[j]), float32(t.End[j]), duration, fn)
		}
		if _, ok := byPhase[t.Priority]; !ok {
			order = append(order, t.Priority)
		}
		byPhase[t.Priority] = append(byPhase[t.Priority], tr)
	}
	slices.Sort(order)
	for _, pr := range order {
		p.phases = append(p.phases, byPhase[pr])
	}
	return p
}

// Update advances the current phase by dt seconds and reports whether all
// phases are finished.
func (p *Player) Update(dt float32) bool {
	if p.Done() {
		return true
	}
	finished := true
	for _, tr := range p.phases[p.phase] {
		for j, tw := range tr.tweens {
			v, done := tw.Update(dt)
			p.values[tr.task][j] = float64(v)
			if !done {
				finished = false
			}
		}
	}
	if finished {
		p.settle(p.phases[p.phase])
		p.phase++
	}
	return p.Done()
}

// Stop snaps every task to its end vector.
func (p *Player) Stop() {
	for ; p.phase < len(p.phases); p.phase++ {
		p.settle(p.phases[p.phase])
	}
}

// settle writes exact end values, dropping float32 rounding from tweens.
func (p *Player) settle(phase []track) {
	for _, tr := range phase {
		copy(p.values[tr.task], p.tasks[tr.task].End)
	}
}

// Done reports whether every phase has finished.
func (p *Player) Done() bool { return p.phase >= len(p.phases) }

// Phase returns the priority currently playing, or false when done.
func (p *Player) Phase() (Priority, bool) {
	if p.Done() {
		return 0, false
	}
	return p.tasks[p.phases[p.phase][0].task].Priority, true
}

// Len returns the number of tasks.
func (p *Player) Len() int { return len(p.tasks) }

// Value returns the current vector of task i.
func (p *Player) Value(i int) []float64 { return p.values[i] }

// Task returns task i.
func (p *Player) Task(i int) Task { return p.tasks[i] }
