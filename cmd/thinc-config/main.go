package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/TheVinhLuong102/thinc/conf"
	"github.com/TheVinhLuong102/thinc/confhcl"
	"github.com/TheVinhLuong102/thinc/internal/cli"
	"github.com/TheVinhLuong102/thinc/internal/ctxlog"
	"github.com/TheVinhLuong102/thinc/modules/schedules"
	"github.com/TheVinhLuong102/thinc/registry"
	"github.com/TheVinhLuong102/thinc/resolver"
	"github.com/davecgh/go-spew/spew"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the program logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	reg := registry.New("layers", "optimizers", "schedules")
	if err := reg.Install(schedules.Module{}); err != nil {
		return err
	}

	node, err := load(ctx, cfg.ConfigPath)
	if err != nil {
		return err
	}

	res := resolver.New(reg)
	filled, err := res.FillAndValidate(ctx, node)
	if err != nil {
		return err
	}
	if err := printFilled(outW, filled); err != nil {
		return err
	}

	if cfg.Resolve {
		graph, err := res.ResolveConfig(ctx, filled)
		if err != nil {
			return err
		}
		spew.Fdump(outW, graph)
	}
	return nil
}

func load(ctx context.Context, path string) (*conf.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return confhcl.LoadDir(ctx, path)
	}
	return confhcl.LoadFile(ctx, path)
}

// printFilled renders the filled configuration as indented JSON, sigil keys
// and all.
func printFilled(outW io.Writer, filled *conf.Node) error {
	value := conf.ToCtyValue(filled)
	raw, err := ctyjson.Marshal(value, value.Type())
	if err != nil {
		return fmt.Errorf("cannot render filled configuration: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		return err
	}
	indented.WriteByte('\n')
	_, err = outW.Write(indented.Bytes())
	return err
}

// newLogger builds an isolated slog.Logger; the global default is left
// untouched.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	} else {
		handler = slog.NewTextHandler(outW, opts)
	}
	return slog.New(handler)
}
