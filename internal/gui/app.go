package gui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/shapes"
	"github.com/san-kum/ballsim/internal/vmath"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const telemetryCapacity = 200

// App is the window front end. World coordinates are window pixels.
type App struct {
	Config    *config.Config
	Sim       *dynamo.Simulation
	Decor     []shapes.Drawable
	Running   bool
	Telemetry []float64

	surface *Surface
	logger  *log.Logger
	err     error
}

func NewApp(cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	decor, err := shapes.Decor(cfg.Decor)
	if err != nil {
		return nil, err
	}
	a := &App{
		Config:    cfg,
		Decor:     decor,
		Running:   true,
		Telemetry: make([]float64, 0, telemetryCapacity),
		surface:   NewSurface(ColBg),
		logger:    logger,
	}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.World.Width), int32(cfg.World.Height), "ballsim")
	fps := cfg.Render.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *log.Logger) error {
	a, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	initWindow(cfg)
	defer rl.CloseWindow()
	defer a.surface.Unload()

	a.RunLoop()
	return a.err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return
		}
		a.Draw()
	}
}

func (a *App) reset() error {
	sim, err := a.Config.NewSimulation(dynamo.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.Sim = sim
	a.Telemetry = a.Telemetry[:0]
	a.err = nil
	return nil
}

// Update handles input and advances one tick. It reports whether the user
// asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.reset(); err != nil {
			a.logger.Error("reset failed", "err", err)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		m := rl.GetMousePosition()
		a.spawnAt(vmath.V(float64(m.X), float64(m.Y)))
	}

	step := a.Running || rl.IsKeyPressed(rl.KeyS)
	if step && a.err == nil {
		a.advance()
	}
	return false
}

func (a *App) spawnAt(pos vmath.Vec2) {
	p, err := a.Config.SpawnAt(pos)
	if err == nil {
		err = a.Sim.RequestSpawn(p)
	}
	if err != nil {
		a.logger.Warn("spawn rejected", "pos", pos, "err", err)
	}
}

func (a *App) advance() {
	if err := a.Sim.Tick(); err != nil {
		a.err = err
		a.Running = false
		a.logger.Error("tick failed", "err", err)
		return
	}
	a.Telemetry = append(a.Telemetry, metrics.Total(a.Sim.Bodies()))
	if len(a.Telemetry) > telemetryCapacity {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	shapes.DrawFrame(a.surface, a.Decor, a.Sim.Bodies())
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText("ballsim", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %d bodies  tick %d  collisions %d", a.Sim.Len(), a.Sim.Ticks(), a.Sim.Collisions()), 140, 36, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	if a.err != nil {
		status, col = "HALTED", rl.Red
		rl.DrawText(a.err.Error(), 30, 64, 14, rl.Red)
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	rl.DrawText(status, int32(w)-130, 30, 16, col)

	a.DrawTelemetry(30, int32(h)-120, 400, 60)
	rl.DrawText("[CLICK] SPAWN  [SPACE] PAUSE  [S] STEP  [R] RESET  [Q] QUIT", int32(w)-580, int32(h)-40, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, int32(h)-40, 14, ColTextDim)
}

// DrawTelemetry plots kinetic energy history inside the given box.
func (a *App) DrawTelemetry(x, y, width, height int32) {
	points := telemetryPoints(a.Telemetry, float32(x), float32(y), float32(width), float32(height))
	if points == nil {
		return
	}
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}

// telemetryPoints scales values into the box, newest on the right.
func telemetryPoints(values []float64, x, y, width, height float32) []rl.Vector2 {
	if len(values) < 2 {
		return nil
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, val := range values {
		px := x + float32(i)/float32(len(values)-1)*width
		norm := (val - minVal) / (maxVal - minVal)
		py := y + height - float32(norm)*height
		points[i] = rl.NewVector2(px, py)
	}
	return points
}
