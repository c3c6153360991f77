package gui

import (
	"fmt"
	"image/color"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/forktal/internal/audio"
	"github.com/san-kum/forktal/internal/config"
	"github.com/san-kum/forktal/internal/export"
	"github.com/san-kum/forktal/internal/fractal"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColPanel   = rl.NewColor(10, 10, 10, 190)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
)

// App hosts a field in a raylib window, one field cell per scale×scale
// block of screen pixels.
type App struct {
	cfg   *config.Config
	field *fractal.Field

	buf    []byte
	pixels []color.RGBA
	tex    rl.Texture2D
	font   rl.Font

	Running bool
	ShowHUD bool
	Message string

	Audio *audio.Processor
}

func initWindow(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Width*cfg.Scale), int32(cfg.Height*cfg.Scale), "Forktal")
	rl.SetTargetFPS(int32(cfg.FPS))
}

// NewApp builds the field and its texture. The window must already be open.
func NewApp(cfg *config.Config) *App {
	a := &App{
		cfg:     cfg,
		field:   cfg.NewField(),
		buf:     make([]byte, cfg.Width*cfg.Height*4),
		pixels:  make([]color.RGBA, cfg.Width*cfg.Height),
		font:    rl.GetFontDefault(),
		Running: true,
		ShowHUD: true,
	}

	img := rl.GenImageColor(cfg.Width, cfg.Height, ColBg)
	a.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(a.tex, rl.FilterPoint)

	if cfg.Audio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			a.Audio = proc
		}
	}
	return a
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) {
	initWindow(cfg)
	defer rl.CloseWindow()

	app := NewApp(cfg)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	rl.UnloadTexture(a.tex)
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.field.Zoom()
	}

	keys := panKeys{
		left:  repeated(rl.KeyLeft) || repeated(rl.KeyH),
		right: repeated(rl.KeyRight) || repeated(rl.KeyL),
		up:    repeated(rl.KeyUp) || repeated(rl.KeyK),
		down:  repeated(rl.KeyDown) || repeated(rl.KeyJ),
	}
	if dx, dy := keys.offset(a.field.ScaleWidth(), a.field.ScaleHeight(), a.cfg.PanFraction); dx != 0 || dy != 0 {
		a.field.Shift(dx, dy)
	}

	if rl.IsKeyPressed(rl.KeyP) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.field = a.cfg.NewField()
		a.Running = true
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.snapshot()
	}

	rate := 0.0
	if a.Running {
		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		a.field.Step(dt)
		rate = float64(time.Second) / float64(a.field.Tick())
	}

	if a.Audio != nil {
		a.Audio.UpdateField(a.field.EscapedFraction(), rate)
	}
}

func repeated(key int32) bool {
	return rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key)
}

func (a *App) snapshot() {
	name := export.SnapshotName(time.Now())
	if err := export.SavePNG(name, a.field); err != nil {
		log.Printf("snapshot: %v", err)
		a.Message = "snapshot failed"
		return
	}
	a.Message = "saved " + name
}

func (a *App) Draw() {
	a.field.Draw(a.buf)
	copyPixels(a.pixels, a.buf)
	rl.UpdateTexture(a.tex, a.pixels)

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	src := rl.NewRectangle(0, 0, float32(a.cfg.Width), float32(a.cfg.Height))
	dst := rl.NewRectangle(0, 0, float32(a.cfg.Width*a.cfg.Scale), float32(a.cfg.Height*a.cfg.Scale))
	rl.DrawTexturePro(a.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)

	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w := a.cfg.Width * a.cfg.Scale
	h := a.cfg.Height * a.cfg.Scale

	rl.DrawRectangle(0, 0, int32(w), 64, ColPanel)
	a.drawText("forktal", 12, 10, 20, ColSelect)

	v := a.field.Viewport()
	c := v.Center()
	a.drawText(fmt.Sprintf("c = %.6g %+.6gi   width %.3e", real(c), imag(c), a.field.ScaleWidth()), 110, 14, 14, ColText)
	a.drawText(fmt.Sprintf("step %d   escaped %.1f%%", a.field.GlobalStep(), 100*a.field.EscapedFraction()), 12, 40, 14, ColAccent)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, w-90, 10, 16, col)

	rl.DrawRectangle(0, int32(h-28), int32(w), 28, ColPanel)
	a.drawText("[SPACE] ZOOM  [ARROWS] PAN  [P] PAUSE  [R] RESET  [S] SNAP  [V] HUD  [ESC] QUIT", 12, h-20, 12, ColTextDim)

	if a.Audio != nil && a.Audio.Active {
		bass, mid, high := a.Audio.Levels()
		a.drawText("AUDIO ["+meter((bass+mid+high)/3, 20)+"]", w-230, 40, 12, ColAccent)
	}
	if a.Message != "" {
		a.drawText(a.Message, w-230, h-48, 12, ColText)
	}
}

func (a *App) drawText(text string, x, y int, size int, col color.RGBA) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, col)
}
