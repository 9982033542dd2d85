// Package app implements the graphgo command line tool.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/graphgo"
	"github.com/hupe1980/graphgo/codec"
	"github.com/hupe1980/graphgo/fixture"
	"github.com/spf13/cobra"
)

// ErrNoFixture is returned when a command runs without --fixture.
var ErrNoFixture = errors.New("no fixture given, use --fixture")

// Options holds the flags shared by every subcommand.
type Options struct {
	fixture  string
	format   string
	logLevel string
	pretty   bool
}

// session is a loaded fixture ready to be queried.
type session struct {
	world  *graphgo.World
	index  fixture.Index
	codec  codec.Codec
	pretty bool
}

// New creates the root command.
func New() *cobra.Command {
	opts := &Options{}

	maincmd := &cobra.Command{
		Use:   "graphgo <options> <cmd> <args>",
		Short: "query graphs described by YAML fixtures",
		Long: `
This command loads a graph fixture into memory and runs traversals,
reachability and path queries against it. Results are written as JSON.
Entity arguments accept fixture keys or numeric vertex ids.
`,
		SilenceUsage: true,
	}

	flags := maincmd.PersistentFlags()
	flags.StringVarP(&opts.fixture, "fixture", "f", "", "path to the YAML fixture")
	flags.StringVar(&opts.format, "format", codec.Default.Name(), "output codec ("+strings.Join(codec.Names(), "|")+")")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flags.BoolVar(&opts.pretty, "pretty", false, "indent output")

	maincmd.AddCommand(NewStats(opts))
	maincmd.AddCommand(NewReach(opts))
	maincmd.AddCommand(NewPath(opts))
	maincmd.AddCommand(NewPaths(opts))
	maincmd.AddCommand(NewFetch(opts))
	return maincmd
}

func (o *Options) load(cmd *cobra.Command) (*session, error) {
	if o.fixture == "" {
		return nil, ErrNoFixture
	}
	c, ok := codec.ByName(o.format)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", o.format)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	f, err := fixture.LoadFile(o.fixture)
	if err != nil {
		return nil, err
	}
	logger := graphgo.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	w := graphgo.New(graphgo.WithLogger(logger))
	idx, err := f.Build(w)
	if err != nil {
		return nil, fmt.Errorf("build fixture: %w", err)
	}
	return &session{world: w, index: idx, codec: c, pretty: o.pretty}, nil
}

func (s *session) write(cmd *cobra.Command, v any) error {
	return codec.Write(cmd.OutOrStdout(), s.codec, v, s.pretty)
}
