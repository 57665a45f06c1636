// Command oxy-move opens a window and steers a first-person rig with the keyboard and mouse.
// There is no geometry; the clear color follows the rig's heading, pitch and position.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-move/common"
	"github.com/Carmen-Shannon/oxy-move/config"
	"github.com/Carmen-Shannon/oxy-move/engine"
	"github.com/Carmen-Shannon/oxy-move/engine/game_object"
	"github.com/Carmen-Shannon/oxy-move/engine/logger"
	"github.com/Carmen-Shannon/oxy-move/engine/movement"
	"github.com/Carmen-Shannon/oxy-move/engine/renderer"
	"github.com/Carmen-Shannon/oxy-move/engine/window"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used when empty)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// ── Window + Renderer ───────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithLogger(log.Named("window")),
	)

	presentMode, _ := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithLogger(log.Named("renderer")),
	)
	if err != nil {
		_ = win.Close()
		log.Fatal("renderer unavailable", zap.Error(err))
	}

	// ── Scene graph ─────────────────────────────────────────────────────
	// The person walks and turns; the camera rig on top of it only pitches.
	person := game_object.NewGameObject(
		game_object.WithName("person"),
		game_object.WithPosition(0, 0, 5),
	)
	rig := game_object.NewGameObject(
		game_object.WithName("camera_rig"),
		game_object.WithPosition(0, 1.6, 0),
	)
	person.AddChild(rig)

	// ── Controller ──────────────────────────────────────────────────────
	options := append(cfg.Controller.Options(), movement.WithLogger(log.Named("movement")))
	mc := movement.NewMoveController(win.Input(), person, person, rig, options...)
	defer mc.Dispose()

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithTicker(mc),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithRenderFrameLimit(cfg.Engine.RenderFrameLimit),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithLogger(log.Named("engine")),
	)

	eng.SetRenderCallback(func(float64) {
		_, yaw, _ := person.Rotation()
		phi := common.SphericalPhi(rig.WorldQuaternion().Rotate(common.AxisZ))
		x, _, z := person.Position()
		r.SetClearColor(orientationTint(yaw, phi, x, z))
	})

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  oxy-move                                            ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Move: WASD / arrow keys (one direction at a time)   ║")
	fmt.Println("║  Look: drag left/right to turn, up/down to pitch     ║")
	fmt.Println("║  Esc:  quit                                          ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	log.Info("starting", zap.String("config", *configPath))
	eng.Run()

	x, y, z := person.Position()
	log.Info("stopped", zap.Float64("x", x), zap.Float64("y", y), zap.Float64("z", z))
}

// orientationTint maps the rig state to a clear color: heading picks the red/green mix,
// looking up brightens blue, and position adds a faint floor grid so walking is visible.
//
// Parameters:
//   - yaw: heading in radians
//   - phi: polar angle of the view direction from straight up, in [0, π]
//   - x, z: ground position
//
// Returns:
//   - r, g, b, a: color components in [0, 1]
func orientationTint(yaw, phi, x, z float64) (r, g, b, a float64) {
	grid := 0.05 * math.Cos(x*math.Pi) * math.Cos(z*math.Pi)
	r = clamp01(0.35 + 0.25*math.Cos(yaw) + grid)
	g = clamp01(0.35 + 0.25*math.Sin(yaw) + grid)
	b = clamp01(0.15 + 0.6*(1-phi/math.Pi) + grid)
	return r, g, b, 1
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
