package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/patview"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Extractor patview.Extractor
	Records   patview.RecordService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" help:"Archive database path (default: $PATVIEW_DB or ~/.patview/patview.db)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Show    ShowCmd    `cmd:"" help:"Extract a publication and print it as JSON"`
	Claims  ClaimsCmd  `cmd:"" help:"Print the claims of a publication"`
	Figures FiguresCmd `cmd:"" help:"List drawings and the image files that back them"`
	Import  ImportCmd  `cmd:"" help:"Extract publications into the archive"`
	List    ListCmd    `cmd:"" help:"List archived publications"`
	Get     GetCmd     `cmd:"" help:"Print an archived publication as JSON"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an archived publication"`
	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP API"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Path    string `arg:"" help:"Publication XML file or directory"`
	Format  string `short:"f" enum:"json,markdown" default:"json" help:"Output format (json, markdown)"`
	Compact bool   `help:"Print JSON on a single line"`
}

// ClaimsCmd is the "claims" subcommand.
type ClaimsCmd struct {
	Path string `arg:"" help:"Publication XML file or directory"`
	Raw  bool   `help:"Keep line break markers instead of printing line breaks"`
}

// FiguresCmd is the "figures" subcommand.
type FiguresCmd struct {
	Path string `arg:"" help:"Publication XML file or directory"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Paths       []string `arg:"" help:"Publication XML files or directories"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Publication string `short:"p" help:"Only show this publication number"`
	Limit       int    `short:"n" default:"50" help:"Maximum number of records"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Record ID"`
	Force bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `default:":8080" env:"PATVIEW_ADDR" help:"Listen address"`
	MaxBody int64  `name:"max-body" default:"33554432" help:"Maximum upload size in bytes"`
}
