package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/forktal/internal/config"
	"github.com/san-kum/forktal/internal/export"
	"github.com/san-kum/forktal/internal/fractal"
	"github.com/san-kum/forktal/internal/gui"
	"github.com/san-kum/forktal/internal/viz"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	// Config file
	configFile string
	preset     string
	// Field
	width         int
	height        int
	scale         int
	tick          time.Duration
	aspectCorrect bool
	// Hosts
	frameRate int
	theme     string
	withAudio bool
	// Headless rendering
	ticks   int
	zooms   int
	outPath string
)

// main registers the command tree and exits 1 if the selected command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forktal",
		Short: "escape-time fractal explorer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(io.Discard)
			return viz.RunInteractive(config.DefaultConfig())
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "explore in the terminal",
		RunE:  runView,
	}
	addConfigFlags(viewCmd)
	viewCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	viewCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "explore in a raylib window",
		RunE:  runWindow,
	}
	addConfigFlags(windowCmd)
	addSizeFlags(windowCmd)
	windowCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	windowCmd.Flags().BoolVar(&withAudio, "audio", false, "play the ambient drone")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "step a field headlessly and save a PNG",
		RunE:  runRender,
	}
	addConfigFlags(renderCmd)
	addSizeFlags(renderCmd)
	renderCmd.Flags().IntVar(&ticks, "ticks", 64, "number of ticks to simulate")
	renderCmd.Flags().IntVar(&zooms, "zoom", 0, "zooms to apply before stepping")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "forktal.png", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping and drawing",
		RunE:  runBench,
	}
	addConfigFlags(benchCmd)
	benchCmd.Flags().IntVar(&ticks, "ticks", 64, "ticks per field size")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named viewports",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(viewCmd, windowCmd, renderCmd, benchCmd, presetsCmd, configCmd)
	return rootCmd
}

func setupLogging(on bool) {
	log.SetPrefix("forktal: ")
	log.SetFlags(log.Ltime)
	if on {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named viewport")
	cmd.Flags().DurationVar(&tick, "tick", fractal.DefaultTick, "time per step")
	cmd.Flags().BoolVar(&aspectCorrect, "aspect-correct", false, "scale y by height instead of width")
}

func addSizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "field width in points")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "field height in points")
	cmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "screen pixels per point")
}

// loadConfig layers the config file and then any flags the user set over
// the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		log.Printf("loaded %s", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Preset = preset
		cfg.Viewport = nil
	}
	if flags.Changed("tick") {
		cfg.Tick = tick
	}
	if flags.Changed("aspect-correct") {
		cfg.AspectCorrect = aspectCorrect
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("audio") {
		cfg.Audio = withAudio
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the alt screen owns the terminal
	log.SetOutput(io.Discard)
	return viz.Run(cfg)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Printf("window %dx%d at %dx over %s", cfg.Width, cfg.Height, cfg.Scale, cfg.View())
	gui.Run(cfg)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if ticks < 0 || zooms < 0 {
		return errors.New("--ticks and --zoom must not be negative")
	}

	start := time.Now()
	field := render(cfg, zooms, ticks)
	elapsed := time.Since(start)

	if err := export.SavePNG(outPath, field); err != nil {
		return err
	}

	fmt.Printf("rendered %dx%d, %d steps in %v\n", field.Width(), field.Height(), field.GlobalStep(), elapsed)
	fmt.Printf("viewport %s\n", field.Viewport())
	fmt.Printf("escaped  %.2f%%\n", 100*field.EscapedFraction())
	fmt.Printf("saved    %s\n", outPath)
	return nil
}

// render builds a field, zooms it n times and feeds it ticks tick periods.
func render(cfg *config.Config, n, ticks int) *fractal.Field {
	field := cfg.NewField()
	for i := 0; i < n; i++ {
		field.Zoom()
	}
	for i := 0; i < ticks; i++ {
		field.Step(field.Tick())
	}
	return field
}

type benchResult struct {
	width, height int
	step, draw    time.Duration
	escaped       []float64
}

func benchField(cfg *config.Config, w, h, ticks int) benchResult {
	field := fractal.New(w, h, cfg.FieldOptions()...)
	buf := make([]byte, w*h*4)
	res := benchResult{width: w, height: h, escaped: make([]float64, 0, ticks)}

	for i := 0; i < ticks; i++ {
		start := time.Now()
		field.Step(field.Tick())
		res.step += time.Since(start)

		start = time.Now()
		field.Draw(buf)
		res.draw += time.Since(start)

		res.escaped = append(res.escaped, 100*field.EscapedFraction())
	}
	return res
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if ticks <= 0 {
		return errors.New("--ticks must be positive")
	}

	sizes := [][2]int{{100, 75}, {200, 150}, {400, 300}, {800, 600}}

	fmt.Printf("benchmarking %d ticks over %s\n\n", ticks, cfg.View())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tPOINTS\tSTEP\tDRAW\tPOINT-STEPS/SEC\tESCAPED")

	var last benchResult
	for _, size := range sizes {
		res := benchField(cfg, size[0], size[1], ticks)
		points := size[0] * size[1]
		rate := float64(points*ticks) / res.step.Seconds()
		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%v\t%.3g\t%.1f%%\n",
			size[0], size[1], points,
			res.step/time.Duration(ticks), res.draw/time.Duration(ticks),
			rate, res.escaped[len(res.escaped)-1])
		last = res
	}
	if err := w.Flush(); err != nil {
		return err
	}

	graph := asciigraph.Plot(last.escaped,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("escaped %% per tick (%dx%d)", last.width, last.height)))
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVIEWPORT\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		v, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, v, config.PresetInfo(name))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "forktal.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
