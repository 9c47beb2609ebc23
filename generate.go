package main

import (
	"fmt"
	"io"

	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	width     int
	height    int
	seed      int64
	quotes    int
	poolFile  string
	showQuote bool
}

var generateOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print an ASCII labyrinth",
	Long: `Generates a labyrinth and prints it:
'#' wall, 'S' start, 'E' end, '?' quote, ' ' path.
A zero seed picks one from the clock; the seed used is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenerate(cmd.OutOrStdout(), generateOpts)
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateOpts.width, "width", 15, "maze width in cells")
	generateCmd.Flags().IntVar(&generateOpts.height, "height", 15, "maze height in cells")
	generateCmd.Flags().Int64Var(&generateOpts.seed, "seed", 0, "generation seed, 0 picks one")
	generateCmd.Flags().IntVar(&generateOpts.quotes, "quotes", 0, "number of quotes to hide")
	generateCmd.Flags().StringVar(&generateOpts.poolFile, "pool", "", "YAML quote pool, built-in pool when empty")
	generateCmd.Flags().BoolVar(&generateOpts.showQuote, "list-quotes", false, "list the hidden quotes with their positions")
}

func runGenerate(w io.Writer, opts generateOptions) error {
	var genOpts []maze.GeneratorOption
	if opts.seed != 0 {
		genOpts = append(genOpts, maze.WithSeed(opts.seed))
	}
	generator := maze.NewGenerator(genOpts...)

	grid, err := generator.Generate(opts.width, opts.height)
	if err != nil {
		return err
	}

	var quotes []*maze.Quote
	if opts.quotes > 0 {
		pool := maze.DefaultPool()
		if opts.poolFile != "" {
			if pool, err = maze.LoadPoolFile(opts.poolFile); err != nil {
				return err
			}
		}
		if opts.quotes > len(pool) {
			return fmt.Errorf("asked for %d quotes, the pool has %d", opts.quotes, len(pool))
		}
		for n := 0; n < opts.quotes; n++ {
			quote := pool[n]
			quotes = append(quotes, &quote)
		}
		if err := maze.PlaceQuotes(grid, quotes, generator.Rand()); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "seed: %d\n", generator.Seed())
	fmt.Fprint(w, grid.String())
	if opts.showQuote {
		for _, q := range quotes {
			fmt.Fprintf(w, "(%d,%d) [%s] %s - %s\n", q.Position.X, q.Position.Y, q.Type, q.Text, q.Author)
		}
	}
	return nil
}
