// Command voxnav generates or loads a voxel world, builds its navigation
// graph and answers one path query.
//
//	voxnav -seed 7 -size 48x48x24 -from 3,4 -to 40,41
//	voxnav -load world.snap.zst -from 3,4,9 -to 40,41,12 -metrics
//
// Points are "x,y,z" cells or "x,y" columns; a column resolves to the air cell
// above its highest solid voxel.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/voxnav/config"
	"github.com/katalvlaran/voxnav/metrics"
	"github.com/katalvlaran/voxnav/nav"
	"github.com/katalvlaran/voxnav/terrain"
	"github.com/katalvlaran/voxnav/voxel"
	"github.com/katalvlaran/voxnav/water"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	config, load, save   string
	seed                 int64
	size                 string
	width, depth, height int
	from, to             string
	verbose, metrics     bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("voxnav", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "YAML tuning file")
	fs.StringVar(&f.load, "load", "", "read the world from a snapshot instead of generating it")
	fs.StringVar(&f.save, "save", "", "write the world snapshot to this path")
	fs.Int64Var(&f.seed, "seed", 0, "terrain seed (0 keeps the configured seed)")
	fs.StringVar(&f.size, "size", "", "generated world size as WxDxH; the sea level scales with H")
	fs.StringVar(&f.from, "from", "", "path start as x,y,z or x,y")
	fs.StringVar(&f.to, "to", "", "path goal as x,y,z or x,y")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
	fs.BoolVar(&f.metrics, "metrics", false, "print collected metrics on exit")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if (f.from == "") != (f.to == "") {
		return f, fmt.Errorf("%w: -from and -to go together", errUsage)
	}
	if f.size != "" {
		var err error
		if f.width, f.depth, f.height, err = parseSize(f.size); err != nil {
			return f, err
		}
	}

	return f, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
		}
		return 2
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := execute(f, logger, stdout); err != nil {
		logger.Error("voxnav failed", "err", err)
		return 1
	}

	return 0
}

func execute(f flags, logger *slog.Logger, stdout io.Writer) error {
	tuning := config.Default()
	if f.config != "" {
		t, err := config.Load(f.config)
		if err != nil {
			return err
		}
		tuning = t
	}
	if f.seed != 0 {
		tuning.World.Seed = f.seed
	}
	if f.size != "" {
		if tuning.World.Height > 0 {
			tuning.World.SeaLevel *= float64(f.height) / float64(tuning.World.Height)
		}
		tuning.World.Width, tuning.World.Depth, tuning.World.Height = f.width, f.depth, f.height
	}

	grid, layer, err := loadWorld(f.load, tuning.World, logger)
	if err != nil {
		return err
	}
	if f.save != "" {
		if err := voxel.SaveFile(f.save, grid); err != nil {
			return err
		}
		logger.Info("snapshot saved", "path", f.save)
	}

	graphOpts, err := tuning.GraphOptions()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}
	world, err := nav.New(grid, layer,
		nav.WithLogger(logger),
		nav.WithObserver(collector),
		nav.WithGraphOptions(graphOpts...),
		nav.WithSearchOptions(tuning.SearchOptions()...),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	world.Build()
	s := world.Stats()
	fmt.Fprintf(stdout, "world %dx%dx%d built in %s\n", grid.Width, grid.Depth, grid.Height, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(stdout, "cells=%d runs=%d surfaces=%d waypoints=%d exits=%d islands=%d\n",
		s.Cells, s.Runs, s.Surfaces, s.Waypoints, s.Exits, s.Islands)

	if f.from != "" {
		if err := route(world, f.from, f.to, stdout); err != nil {
			return err
		}
	}
	if f.metrics {
		return metrics.WriteText(stdout, reg)
	}

	return nil
}

// loadWorld reads the snapshot at path, or generates a world from p when
// path is empty. Water fills every basin below the sea level.
func loadWorld(path string, p terrain.Params, logger *slog.Logger) (*voxel.Grid, water.Layer, error) {
	if path != "" {
		grid, err := voxel.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("snapshot loaded", "path", path, "runs", grid.Runs())

		return grid, terrain.Flood(terrain.HeightsOf(grid), p.SeaLevel), nil
	}

	grid, heights, err := terrain.Generate(p)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("terrain generated", "seed", p.Seed, "peak", heights.Max())

	return grid, terrain.Flood(heights, p.SeaLevel), nil
}

func route(world *nav.World, from, to string, stdout io.Writer) error {
	a, err := parsePoint(world.Grid(), from)
	if err != nil {
		return err
	}
	b, err := parsePoint(world.Grid(), to)
	if err != nil {
		return err
	}

	res := world.Search(a, b)
	if !res.Found() {
		fmt.Fprintf(stdout, "no path %s -> %s (expanded %d)\n", a, b, res.Expanded)
		return nil
	}
	fmt.Fprintf(stdout, "path %s -> %s: %d steps, cost %.3f, expanded %d\n",
		a, b, len(res.Path)-1, res.Cost, res.Expanded)
	for _, k := range res.Path {
		fmt.Fprintf(stdout, "  %s\n", k)
	}

	return nil
}

// parsePoint accepts "x,y,z", or "x,y" for the cell above the column's top.
func parsePoint(grid *voxel.Grid, s string) (voxel.Key, error) {
	if strings.Count(s, ",") != 1 {
		return voxel.ParseKey(s)
	}
	xs, ys, _ := strings.Cut(s, ",")
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return voxel.NoKey, fmt.Errorf("%w: %q", voxel.ErrKeySyntax, s)
	}
	top := grid.TopSolid(x, y)
	if top < 0 {
		return voxel.NoKey, fmt.Errorf("%w: column %d,%d has no ground", voxel.ErrOutOfRange, x, y)
	}

	return voxel.Pack(x, y, top+1), nil
}

// parseSize parses "WxDxH".
func parseSize(s string) (w, d, h int, err error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: size %q is not WxDxH", errUsage, s)
	}
	var v [3]int
	for i, p := range parts {
		if v[i], err = strconv.Atoi(p); err != nil {
			return 0, 0, 0, fmt.Errorf("%w: size %q is not WxDxH", errUsage, s)
		}
	}

	return v[0], v[1], v[2], nil
}
