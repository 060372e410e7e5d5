// tmxtool is a CLI utility for inspecting Tiled maps and tilesets.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-tiled/internal/config"
	"github.com/Faultbox/midgard-tiled/internal/logger"
	"github.com/Faultbox/midgard-tiled/pkg/tiled"
	"github.com/Faultbox/midgard-tiled/pkg/tmx"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = run(os.Stdout, cfg, args[0], args[1:])
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, cfg *config.Config, command string, args []string) error {
	opts := loadOptions(cfg)

	switch command {
	case "info":
		return cmdInfo(w, cfg, opts, args)
	case "layers", "ls":
		return cmdLayers(w, opts, args)
	case "tile":
		return cmdTile(w, opts, args)
	case "cells":
		return cmdCells(w, cfg, opts, args)
	case "rect":
		return cmdRect(w, opts, args)
	case "dump":
		return cmdDump(w, opts, args)
	case "init-config":
		path, err := cfg.Save()
		if err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(w, "Wrote %s\n", path)
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Println(`tmxtool - Tiled map inspection utility

Usage:
  tmxtool [flags] <command> [args]

Commands:
  info <map.tmx>...                  Show map summaries (loaded in parallel)
  layers <map.tmx>                   Show the layer tree
  tile <map.tmx> <layer> <x> <y>     Resolve one cell to its tileset and atlas rect
  cells <map.tmx> <layer>            List every cell of a tile layer
  rect <tileset.tsx> <local id>      Show the atlas rect of a tile
  dump <map.tmx>                     Print the decoded model as YAML
  init-config                        Write the current settings to the config dir

Flags:
  -config <path>   Config file (default ./tmxtool.yaml, then the user config dir)
  -debug           Enable debug logging
  -log-file <path> Also write logs to a rotating file
  -zstd            Allow zstd-compressed layer data
  -workers <n>     Maps loaded in parallel by info
  -skip-missing    Keep loading when an external tileset is missing
  -format <fmt>    Output format for info: text or yaml

Examples:
  tmxtool info maps/*.tmx
  tmxtool tile maps/town.tmx ground 12 7
  tmxtool rect tilesets/terrain.tsx 37`)
}

func loadOptions(cfg *config.Config) tmx.Options {
	return tmx.Options{
		Logger:              logger.Named("tmx"),
		AllowZstd:           cfg.Decode.AllowZstd,
		Workers:             cfg.Decode.Workers,
		SkipMissingTilesets: cfg.Decode.SkipMissingTilesets,
	}
}

func cmdInfo(w io.Writer, cfg *config.Config, opts tmx.Options, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: tmxtool info <map.tmx>...")
	}

	logger.Debug("loading maps", zap.Int("count", len(args)), zap.Int("workers", opts.Workers))
	maps, err := tmx.LoadFiles(context.Background(), args, opts)
	if err != nil {
		return err
	}
	logger.Info("maps loaded", zap.Int("count", len(maps)))
	for i, m := range maps {
		for _, ref := range m.Tilesets {
			if ref.Tileset == nil {
				logger.Warn("tileset unavailable, its tiles will not resolve",
					zap.String("map", args[i]),
					zap.String("source", ref.Source),
					zap.Uint32("firstgid", ref.FirstGID))
			}
		}
	}

	summaries := make([]mapSummary, len(maps))
	for i, m := range maps {
		summaries[i] = summarize(args[i], m, false)
	}

	if cfg.Output.Format == config.FormatYAML {
		return writeYAML(w, summaries)
	}
	for i, s := range summaries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printSummary(w, s)
	}
	return nil
}

func printSummary(w io.Writer, s mapSummary) {
	fmt.Fprintf(w, "Map:         %s\n", s.Path)
	fmt.Fprintf(w, "Orientation: %s\n", s.Orientation)
	fmt.Fprintf(w, "Size:        %s tiles of %s\n", s.Size, s.TileSize)
	if s.Infinite {
		fmt.Fprintln(w, "Infinite:    yes")
	}
	fmt.Fprintf(w, "Tilesets:    %d\n", len(s.Tilesets))
	for _, ts := range s.Tilesets {
		status := ""
		if !ts.Loaded {
			status = " (not loaded)"
		}
		fmt.Fprintf(w, "  %5d  %-20s %4d tiles%s\n", ts.FirstGID, ts.Name, ts.TileCount, status)
	}
	fmt.Fprintf(w, "Layers:      %d\n", countLayers(s.Layers))
}

func countLayers(layers []layerSummary) int {
	n := len(layers)
	for _, l := range layers {
		n += countLayers(l.Layers)
	}
	return n
}

func cmdLayers(w io.Writer, opts tmx.Options, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: tmxtool layers <map.tmx>")
	}
	m, err := tmx.Load(args[0], opts)
	if err != nil {
		return err
	}
	printLayers(w, summarizeLayers(m.Layers, false), 0)
	return nil
}

func printLayers(w io.Writer, layers []layerSummary, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, l := range layers {
		detail := ""
		switch {
		case l.Chunks > 0:
			detail = fmt.Sprintf("%d tiles in %d chunks %s", l.Tiles, l.Chunks, l.Bounds)
		case l.Kind == tiled.KindTileLayer.String():
			detail = fmt.Sprintf("%d tiles", l.Tiles)
		case l.Kind == tiled.KindObjectGroup.String():
			detail = fmt.Sprintf("%d objects", l.Objects)
		case l.Image != "":
			detail = l.Image
		}
		hidden := ""
		if !l.Visible {
			hidden = " [hidden]"
		}
		fmt.Fprintf(w, "%s%-12s #%-3d %-20s %s%s\n", indent, l.Kind, l.ID, l.Name, detail, hidden)
		printLayers(w, l.Layers, depth+1)
	}
}

func tileLayer(m *tiled.Map, name string) (*tiled.TileLayer, error) {
	l := m.LayerByName(name)
	if l == nil {
		return nil, fmt.Errorf("no layer named %q", name)
	}
	tl, ok := l.(*tiled.TileLayer)
	if !ok {
		return nil, fmt.Errorf("layer %q is a %s, not a tile layer", name, l.Kind())
	}
	return tl, nil
}

func cmdTile(w io.Writer, opts tmx.Options, args []string) error {
	if len(args) < 4 {
		return errors.New("usage: tmxtool tile <map.tmx> <layer> <x> <y>")
	}
	x, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	m, err := tmx.Load(args[0], opts)
	if err != nil {
		return err
	}
	layer, err := tileLayer(m, args[1])
	if err != nil {
		return err
	}

	cell, ok := layer.CellAt(x, y)
	if !ok {
		return fmt.Errorf("(%d,%d) is outside layer %q", x, y, layer.Name)
	}
	fmt.Fprintln(w, describeCell(m, x, y, cell))
	return nil
}

func cmdCells(w io.Writer, cfg *config.Config, opts tmx.Options, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: tmxtool cells <map.tmx> <layer>")
	}
	m, err := tmx.Load(args[0], opts)
	if err != nil {
		return err
	}
	layer, err := tileLayer(m, args[1])
	if err != nil {
		return err
	}

	emit := func(x, y int, cell tiled.Cell) {
		if cell.Empty() && !cfg.Output.ShowEmpty {
			return
		}
		fmt.Fprintln(w, describeCell(m, x, y, cell))
	}

	if layer.Infinite() {
		for _, c := range layer.Chunks.Chunks() {
			for i, cell := range c.Cells {
				emit(c.X+i%c.Width, c.Y+i/c.Width, cell)
			}
		}
		return nil
	}
	for i, cell := range layer.Cells {
		emit(i%layer.Width, i/layer.Width, cell)
	}
	return nil
}

func cmdRect(w io.Writer, opts tmx.Options, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: tmxtool rect <tileset.tsx> <local id>")
	}
	id, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid tile id: %w", err)
	}

	ts, err := tmx.LoadTileset(args[0], opts)
	if err != nil {
		return err
	}
	rect, err := tiled.SourceRect(ts, uint32(id))
	if err != nil {
		return err
	}

	image := "(per-tile image)"
	if t := ts.Tile(uint32(id)); t != nil && t.Image != nil {
		image = t.Image.Source
	} else if ts.Image != nil {
		image = ts.Image.Source
	}
	fmt.Fprintf(w, "%s #%d: %s in %s\n", ts.Name, id, rect, image)
	return nil
}

func cmdDump(w io.Writer, opts tmx.Options, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: tmxtool dump <map.tmx>")
	}
	m, err := tmx.Load(args[0], opts)
	if err != nil {
		return err
	}
	return writeYAML(w, summarize(args[0], m, true))
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
