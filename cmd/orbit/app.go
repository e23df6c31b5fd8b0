package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/engine"
	"github.com/lixenwraith/orbit/parameter"
)

// Status messages stay visible this long
const messageTTL = 3 * time.Second

// drag tracks a mouse gesture from press to release
type drag struct {
	active       bool
	x0, y0       int
	x, y         int
	startElapsed float64
}

// app is the terminal front end: it renders snapshots and turns input into world calls
type app struct {
	screen  tcell.Screen
	world   *engine.World
	sched   *engine.Scheduler
	thrower *engine.Thrower
	view    view
	drag    drag

	message     string
	messageTime time.Time
}

func newApp(screen tcell.Screen, world *engine.World, sched *engine.Scheduler, thrower *engine.Thrower) *app {
	w, h := screen.Size()
	return &app{
		screen:  screen,
		world:   world,
		sched:   sched,
		thrower: thrower,
		view:    newView(w, h, world.Config().DomainRadius),
	}
}

// run renders at the frame rate and dispatches input until quit or ctx is done
func (a *app) run(ctx context.Context) {
	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	eventChan := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-eventChan:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case <-frameTicker.C:
			a.draw()
		}
	}
}

// handleEvent applies one input event; false means quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		a.view.resize(w, h)
		a.screen.Sync()
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		if a.sched.TogglePause() {
			a.notify("paused")
		} else {
			a.notify("running")
		}
	case '.':
		a.sched.StepOnce()
	case '+', '=':
		a.view.zoom(0.5)
	case '-', '_':
		a.view.zoom(2)
	case 'r':
		a.view.fit(a.world.Config().DomainRadius)
	case 'f':
		a.followNext()
	case 'F':
		if v, ok := a.world.Snapshot().Heaviest(); ok {
			a.world.SetFollowed(v.ID)
			a.notify(fmt.Sprintf("following #%d", v.ID))
		}
	case 'c':
		a.world.ClearFollowed()
		a.notify("frame: origin")
	}
	return true
}

// followNext moves the camera to the body with the next higher ID, wrapping around
func (a *app) followNext() {
	snap := a.world.Snapshot()
	if len(snap.Bodies) == 0 {
		return
	}
	ids := make([]body.ID, len(snap.Bodies))
	for i, v := range snap.Bodies {
		ids[i] = v.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	next := ids[0]
	if snap.Following {
		for _, id := range ids {
			if id > snap.Followed {
				next = id
				break
			}
		}
	}
	a.world.SetFollowed(next)
	a.notify(fmt.Sprintf("following #%d", next))
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !a.drag.active:
		a.drag = drag{active: true, x0: x, y0: y, x: x, y: y, startElapsed: a.world.Elapsed()}
	case pressed:
		a.drag.x, a.drag.y = x, y
	case a.drag.active:
		a.drag.x, a.drag.y = x, y
		a.release()
	}
}

// release converts the finished drag into a thrown body
func (a *app) release() {
	d := a.drag
	a.drag = drag{}

	g := engine.Gesture{
		Start:   a.view.toSim(d.x0, d.y0),
		End:     a.view.toSim(d.x, d.y),
		Elapsed: a.world.Elapsed() - d.startElapsed,
	}
	id, err := a.world.Throw(a.thrower, g)
	switch {
	case errors.Is(err, engine.ErrGestureTooShort):
		a.notify("hold longer to throw")
	case err != nil:
		log.Printf("orbit: throw rejected: %v", err)
		a.notify("throw rejected")
	default:
		a.notify(fmt.Sprintf("threw #%d", id))
	}
}

func (a *app) notify(msg string) {
	a.message = msg
	a.messageTime = time.Now()
}

// draw renders one frame from a snapshot
func (a *app) draw() {
	snap := a.world.Snapshot()
	frame := snap.FrameReference()

	a.screen.Clear()
	space := tcell.StyleDefault.Background(tcellColour(parameter.SpaceColour))
	a.screen.Fill(' ', space)

	if a.drag.active {
		a.drawLine(a.drag.x0, a.drag.y0, a.drag.x, a.drag.y, space.Foreground(tcell.ColorGray))
	}

	// Lighter bodies first so heavy ones stay visible on shared cells
	bodies := snap.Bodies
	sort.Slice(bodies, func(i, j int) bool { return bodies[i].Mass < bodies[j].Mass })
	for _, v := range bodies {
		x, y, ok := a.view.toScreen(r2.Sub(v.Position, frame))
		if !ok {
			continue
		}
		a.screen.SetContent(x, y, glyph(v.Mass), nil, space.Foreground(tcellColour(v.Colour)))
	}

	a.drawStatus(snap)
	a.screen.Show()
}

func (a *app) drawStatus(snap engine.Snapshot) {
	follow := "origin"
	if v, ok := snap.FollowedView(); ok {
		follow = fmt.Sprintf("#%d", v.ID)
	}
	state := "run"
	if a.sched.IsPaused() {
		state = "pause"
	}

	status := fmt.Sprintf(" t=%.3fy bodies=%d lost=%.3gkg frame=%s scale=%.2gm [%s]",
		snap.Elapsed/parameter.Year, len(snap.Bodies), snap.LostMass, follow, a.view.scale, state)
	if a.message != "" && time.Since(a.messageTime) < messageTTL {
		status += " " + a.message
	}

	style := tcell.StyleDefault.Reverse(true)
	_, h := a.screen.Size()
	a.drawText(0, h-1, status, style)
}

func (a *app) drawText(x, y int, s string, style tcell.Style) {
	w, _ := a.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawLine plots a dotted line between two cells
func (a *app) drawLine(x0, y0, x1, y1 int, style tcell.Style) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		a.screen.SetContent(x0, y0, '+', nil, style)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		a.screen.SetContent(x, y, '·', nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
