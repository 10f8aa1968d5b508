package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stickclash/audio"
	"github.com/milk9111/stickclash/common"
	"github.com/milk9111/stickclash/obj"
	"github.com/milk9111/stickclash/prefabs"
	"github.com/milk9111/stickclash/system"
)

var _ system.Surface = (*Surface)(nil)

type Game struct {
	cfg Config

	match   *system.Match
	input   *obj.InputMapper
	poller  *Poller
	cpu     *system.CPUController
	surface *Surface
	sound   *audio.Manager
	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI

	paused         bool
	debug          bool
	quit           bool
	summaryWritten bool
	last           time.Time
}

func NewGame(cfg Config) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		surface: NewSurface(),
		sound:   audio.NewManager(0.8),
	}
	if err := g.load(); err != nil {
		return nil, err
	}

	if err := g.sound.Init(); err != nil {
		log.Printf("audio: disabled: %v", err)
	}
	g.sound.SetMuted(cfg.Mute)

	g.pauseUI = NewPauseUI(g)
	g.setDebug(cfg.Debug)
	return g, nil
}

// load reads roster, tuning and bindings and builds a fresh match. It is
// also the hot-reload path.
func (g *Game) load() error {
	roster, err := prefabs.LoadRoster("")
	if err != nil {
		return err
	}
	p1, ok := roster.Find(g.cfg.P1)
	if !ok {
		return fmt.Errorf("unknown fighter %q (have %v)", g.cfg.P1, roster.Names())
	}
	p2, ok := roster.Find(g.cfg.P2)
	if !ok {
		return fmt.Errorf("unknown fighter %q (have %v)", g.cfg.P2, roster.Names())
	}

	tuning, err := prefabs.LoadMatchConfig("")
	if err != nil {
		log.Printf("match config: %v; using defaults", err)
	}
	bindings, err := prefabs.LoadBindings("")
	if err != nil {
		log.Printf("bindings: %v; using defaults", err)
	}

	input := obj.NewInputMapper(bindings)
	match, err := system.NewMatch(p1, p2, tuning, input)
	if err != nil {
		return err
	}

	humans := []obj.PlayerID{obj.Player1, obj.Player2}
	if g.cfg.CPU != "" {
		brain, err := system.LoadBrain(g.cfg.CPU)
		if err != nil {
			return err
		}
		if g.cpu != nil {
			_ = g.cpu.Close()
		}
		g.cpu = system.NewCPUController(g.cfg.CPUSlot, brain)
		match.Controllers = append(match.Controllers, g.cpu)
		humans = []obj.PlayerID{obj.PlayerForSlot(3 - g.cfg.CPUSlot)}
	}

	match.Events.Subscribe(g.sound.HandleEvent)
	match.SetDebug(g.debug)

	g.match = match
	g.input = input
	g.poller = NewPoller(input, humans...)
	g.summaryWritten = false
	return nil
}

func (g *Game) setDebug(on bool) {
	g.debug = on
	g.match.SetDebug(on)
	if !on {
		if g.watcher != nil {
			_ = g.watcher.Close()
			g.watcher = nil
		}
		return
	}
	if g.watcher != nil {
		return
	}
	dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("hot reload disabled: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) rematch() {
	g.match.Rematch()
	g.summaryWritten = false
}

func (g *Game) Update() error {
	if g.quit {
		g.close()
		return ebiten.Termination
	}

	now := time.Now()
	dt := 1.0 / common.FrameRate
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.setDebug(!g.debug)
	}
	if g.match.Over && inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.rematch()
	}

	g.hotReload()

	g.poller.Poll()
	g.match.Tick(dt)
	applyRumble(g.poller, g.match.DrainRumbles())

	if g.match.Over && g.cfg.Summary != "" && !g.summaryWritten {
		if err := system.WriteSummary(g.cfg.Summary, g.match); err != nil {
			log.Printf("summary: %v", err)
		}
		g.summaryWritten = true
	}
	return nil
}

func (g *Game) hotReload() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("hot reload: %v", err)
	default:
	}
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	if err := g.load(); err != nil {
		log.Printf("hot reload %v: %v", changed, err)
		return
	}
	log.Printf("reloaded after change to %v", changed)
}

func (g *Game) Draw(screen *ebiten.Image) {
	system.Render(g.match, g.surface.Bind(screen))
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.cpu != nil {
		_ = g.cpu.Close()
	}
	g.sound.Close()
}

// run blocks until the window closes or Quit is chosen.
func (g *Game) run() error {
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
