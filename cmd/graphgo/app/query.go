package app

import (
	"github.com/hupe1980/graphgo/codec"
	"github.com/hupe1980/graphgo/graph"
	"github.com/hupe1980/graphgo/model"
	"github.com/spf13/cobra"
)

// NewStats creates the stats command.
func NewStats(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "print vertex, edge and label counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			g := s.world.Graph()
			components := make(map[string]int)
			for _, name := range g.VertexLabels() {
				components[name] = g.V().HasLabel(name).Count()
			}
			relations := make(map[string]int)
			for _, name := range g.EdgeLabels() {
				relations[name] = g.E().HasLabel(name).Count()
			}
			return s.write(cmd, struct {
				Vertices   int            `json:"vertices"`
				Edges      int            `json:"edges"`
				Components map[string]int `json:"components"`
				Relations  map[string]int `json:"relations"`
			}{
				Vertices:   g.VertexCount(),
				Edges:      g.EdgeCount(),
				Components: components,
				Relations:  relations,
			})
		},
	}
}

func endpoints(s *session, args []string) (model.Vertex, model.Vertex, error) {
	from, err := s.index.Resolve(args[0])
	if err != nil {
		return 0, 0, err
	}
	to, err := s.index.Resolve(args[1])
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// NewReach creates the reach command.
func NewReach(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "reach <from> <to>",
		Short: "report whether <to> can be reached from <from>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			from, to, err := endpoints(s, args)
			if err != nil {
				return err
			}
			return s.write(cmd, map[string]any{
				"from":      from,
				"to":        to,
				"reachable": s.world.Search().IsReachable(from, to),
			})
		},
	}
}

// NewPath creates the path command.
func NewPath(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "path <from> <to>",
		Short: "print a path with the fewest hops",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			from, to, err := endpoints(s, args)
			if err != nil {
				return err
			}
			return s.write(cmd, map[string]any{
				"path": s.world.Search().FindPath(from, to),
			})
		},
	}
}

// NewPaths creates the paths command.
func NewPaths(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "paths <from> <to>",
		Short: "print every simple path as a list of edges",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			from, to, err := endpoints(s, args)
			if err != nil {
				return err
			}
			return s.write(cmd, map[string]any{
				"paths": s.world.Search().Paths(from, to),
			})
		},
	}
}

type fetchCmd struct {
	labels    []string
	with      []string
	relations []string
	lines     bool
}

// NewFetch creates the fetch command.
func NewFetch(opts *Options) *cobra.Command {
	c := &fetchCmd{}
	cmd := &cobra.Command{
		Use:   "fetch [<entity>...]",
		Short: "print records for the entities carrying every --label",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return c.run(cmd, s, args)
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVarP(&c.labels, "label", "l", nil, "required component (repeatable)")
	flags.StringSliceVarP(&c.with, "with", "w", nil, "component to project (repeatable)")
	flags.StringSliceVarP(&c.relations, "rel", "r", nil, "outgoing relation to project (repeatable)")
	flags.BoolVar(&c.lines, "lines", false, "stream one record per line")
	return cmd
}

func (c *fetchCmd) run(cmd *cobra.Command, s *session, args []string) error {
	ids := make([]model.Vertex, 0, len(args))
	for _, a := range args {
		v, err := s.index.Resolve(a)
		if err != nil {
			return err
		}
		ids = append(ids, v)
	}

	f := s.world.Fetch(ids...).
		On(func(sel graph.VertexSelection) graph.VertexSelection { return sel.HasLabel(c.labels...) }).
		WithComponents(c.with...)
	for _, rel := range c.relations {
		f.RelationsFetch(rel, func(sel graph.VertexSelection) graph.EdgeSelection { return sel.OutE(rel) }, rel)
	}

	if c.lines {
		_, err := codec.WriteLines(cmd.OutOrStdout(), s.codec, f.Seq())
		return err
	}
	return s.write(cmd, s.world.Collect(cmd.Context(), f))
}
