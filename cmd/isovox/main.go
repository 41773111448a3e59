// Command isovox renders a procedural voxel scene to PNG or SVG.
//
//	isovox -scene hills -palette grass -seed 7 -o hills.png
//	isovox -config render.toml -palettes mine.yaml -palette moss -o out.svg -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/isovox"
	"github.com/gogpu/isovox/palette"
	"github.com/gogpu/isovox/recording"
	_ "github.com/gogpu/isovox/recording/backends/raster"
	_ "github.com/gogpu/isovox/recording/backends/svg"
	"github.com/gogpu/isovox/terrain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "isovox: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	width, height int
	scene         string
	size, maxH    int
	seed          uint64
	seedSet       bool
	palette       string
	palettes      string
	config        string
	backend       string
	output        string
	background    string
	fit           bool
	noJitter      bool
	noEffects     bool
	verbose       bool
	watch         bool
	list          bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("isovox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.width, "width", 800, "image width")
	fs.IntVar(&o.height, "height", 600, "image height")
	fs.StringVar(&o.scene, "scene", "hills", "terrain preset")
	fs.IntVar(&o.size, "size", 16, "scene footprint in voxels")
	fs.IntVar(&o.maxH, "max-height", 8, "tallest column in voxels")
	fs.Uint64Var(&o.seed, "seed", 1, "terrain and shading seed (overrides the config seed)")
	fs.StringVar(&o.palette, "palette", "grass", "palette name")
	fs.StringVar(&o.palettes, "palettes", "", "YAML file with extra palettes")
	fs.StringVar(&o.config, "config", "", "TOML render config")
	fs.StringVar(&o.backend, "backend", "", "output backend (default: chosen from the output extension)")
	fs.StringVar(&o.output, "o", "scene.png", "output file")
	fs.StringVar(&o.background, "bg", "#1b1f27", "background color")
	fs.BoolVar(&o.fit, "fit", true, "center the scene on the canvas")
	fs.BoolVar(&o.noJitter, "no-jitter", false, "disable color jitter")
	fs.BoolVar(&o.noEffects, "no-effects", false, "disable the tuft overlay")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.BoolVar(&o.watch, "watch", false, "re-render when the config or palette file changes")
	fs.BoolVar(&o.list, "list", false, "list scenes, palettes and backends, then exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			o.seedSet = true
		}
	})
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments %v", fs.Args())
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("canvas %dx%d must be positive", o.width, o.height)
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	isovox.SetLogger(logger)
	defer isovox.SetLogger(nil)

	if o.list {
		return list(stdout, o)
	}

	if err := renderOnce(o, logger); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}
	return watch(ctx, o, logger)
}

func list(w io.Writer, o *options) error {
	book, err := loadPalettes(o)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "scenes:   %v\n", terrain.DefaultPresets().Names())
	fmt.Fprintf(w, "palettes: %v\n", book.Names())
	fmt.Fprintf(w, "backends: %v\n", recording.Backends())
	return nil
}

func loadConfig(o *options) (isovox.Config, error) {
	cfg := isovox.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = isovox.LoadConfig(o.config); err != nil {
			return cfg, err
		}
	}
	if o.seedSet || o.config == "" {
		cfg.Shading.Seed = o.seed
	}
	if o.noJitter {
		cfg.Shading.Jitter = 0
	}
	if o.noEffects {
		cfg.Effects.Enabled = false
	}
	return cfg, nil
}

func loadPalettes(o *options) (palette.Book, error) {
	book := palette.Presets()
	if o.palettes != "" {
		ps, err := palette.Load(o.palettes)
		if err != nil {
			return nil, err
		}
		book.Add(ps...)
	}
	return book, nil
}

func openBackend(o *options) (recording.FileBackend, error) {
	if o.backend == "" {
		b, _, err := recording.BackendForFile(o.output)
		return b, err
	}
	b, err := recording.NewBackend(o.backend)
	if err != nil {
		return nil, err
	}
	fb, ok := b.(recording.FileBackend)
	if !ok {
		return nil, fmt.Errorf("backend %q cannot write files", o.backend)
	}
	return fb, nil
}

// fitOrigin moves the projection origin so the scene's bounding box is
// centered on the canvas.
func fitOrigin(cfg isovox.Config, set *isovox.VoxelSet, pal isovox.Palette, w, h int) (isovox.Config, error) {
	probe := cfg
	probe.Projection.OriginX, probe.Projection.OriginY = 0, 0
	rec := recording.NewRecorder(w, h)
	if _, err := isovox.NewRenderer(probe).Render(rec, set, pal); err != nil {
		return cfg, err
	}
	minPt, maxPt, ok := rec.FinishRecording().Bounds()
	if !ok {
		return cfg, nil
	}
	cfg.Projection.OriginX = float64(w)/2 - (minPt.X+maxPt.X)/2
	cfg.Projection.OriginY = float64(h)/2 - (minPt.Y+maxPt.Y)/2
	return cfg, nil
}

func renderOnce(o *options, logger *slog.Logger) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	book, err := loadPalettes(o)
	if err != nil {
		return err
	}
	pal, err := book.Get(o.palette)
	if err != nil {
		return err
	}
	bg, ok := isovox.Hex(o.background)
	if !ok {
		return fmt.Errorf("bad background color %q", o.background)
	}

	params := terrain.Params{Width: o.size, Depth: o.size, Height: o.maxH, Seed: o.seed}
	set, err := terrain.DefaultPresets().Build(o.scene, isovox.NewLattice(), params)
	if err != nil {
		return err
	}

	if o.fit {
		if cfg, err = fitOrigin(cfg, set, pal, o.width, o.height); err != nil {
			return err
		}
	}

	rec := recording.NewRecorder(o.width, o.height)
	rec.Clear(bg)
	stats, err := isovox.NewRenderer(cfg).Render(rec, set, pal)
	if err != nil {
		return err
	}

	backend, err := openBackend(o)
	if err != nil {
		return err
	}
	if err := rec.FinishRecording().Playback(backend); err != nil {
		return err
	}
	if err := backend.SaveToFile(o.output); err != nil {
		return err
	}

	logger.Info("wrote scene",
		"path", o.output,
		"scene", o.scene,
		"palette", pal.Name,
		"voxels", stats.Voxels,
		"polygons", stats.Polygons,
		"effects", stats.SmallPolygons)
	return nil
}
