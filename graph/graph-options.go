package graph

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

type GraphOptions struct {
	Name             string  `yaml:"graph"`          // Graph (edge list) file.
	Format           string  `yaml:"format"`         // Edge list format: snap or csv. Empty infers from the file extension.
	VertexFile       string  `yaml:"vertices"`       // Optional file of raw ids, one per line, for vertices that may have no edges.
	Algorithm        string  `yaml:"algorithm"`      // Algorithm name; resolved by the launcher.
	Directed         bool    `yaml:"directed"`       // Treat edges as directed. Otherwise algorithms view edges direction-agnostically.
	DampingFactor    float64 `yaml:"damping-factor"` // PageRank damping factor.
	MaxIterations    int     `yaml:"max-iterations"` // Superstep cap for fixed-iteration algorithms.
	SourceVertex     uint64  `yaml:"source-vertex"`  // Raw id of the BFS source.
	OutputConsole    bool    `yaml:"output-console"` // Write results to stdout. Takes precedence over OutputFile.
	OutputFile       string  `yaml:"output-file"`    // Write results to this file.
	NumThreads       uint32  `yaml:"threads"`        // Number of graph threads (workers).
	DebugLevel       uint8   `yaml:"debug"`          // 0 for info, 1 for debug, 2 adds trace output, 3 adds memory stats.
	NoColour         bool    `yaml:"no-colour"`      // Removes the colouring from the log output.
	CheckCorrectness bool    `yaml:"check"`          // Run the algorithm's OnCheckCorrectness after execution (might be slow).
	Profile          bool    `yaml:"profile"`        // Profile the algorithm into a pprof file.
	ConfigFile       string  `yaml:"-"`              // YAML file the options were read from, if any.
}

const (
	FORMAT_SNAP = "snap"
	FORMAT_CSV  = "csv"
)

func DefaultOptions() GraphOptions {
	return GraphOptions{
		DampingFactor: 0.85,
		MaxIterations: 10,
		NumThreads:    uint32(runtime.NumCPU()),
	}
}

func bindFlags(fs *flag.FlagSet, o *GraphOptions) {
	fs.StringVar(&o.Name, "graph", o.Name, "Graph file.")
	fs.StringVar(&o.Name, "g", o.Name, "Graph file (shorthand).")
	fs.StringVar(&o.Format, "format", o.Format, "Edge list format: snap or csv. Inferred from the file extension if empty.")
	fs.StringVar(&o.VertexFile, "vertices", o.VertexFile, "Optional vertex file, one raw id per line.")
	fs.StringVar(&o.Algorithm, "algorithm", o.Algorithm, "Algorithm to use (bfs/pr/conn/cd/lcc).")
	fs.BoolVar(&o.Directed, "directed", o.Directed, "Treat the graph as directed.")
	fs.Float64Var(&o.DampingFactor, "damping-factor", o.DampingFactor, "PageRank damping factor.")
	fs.IntVar(&o.MaxIterations, "max-iterations", o.MaxIterations, "Maximum number of iterations for fixed-iteration algorithms.")
	fs.Uint64Var(&o.SourceVertex, "source-vertex", o.SourceVertex, "Source vertex for BFS.")
	fs.BoolVar(&o.OutputConsole, "output-console", o.OutputConsole, "Write output to stdout.")
	fs.StringVar(&o.OutputFile, "output-file", o.OutputFile, "Write output to the given file.")
	fs.Func("t", "Thread count (graph partitions). Default is the number of CPUs.", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 32)
		o.NumThreads = uint32(v)
		return err
	})
	fs.Func("debug", "Adds extra debug output. Level 0 for info, 1 for debug, 2 for trace, 3 adds memory stats.", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 8)
		o.DebugLevel = uint8(v)
		return err
	})
	fs.BoolVar(&o.NoColour, "nc", o.NoColour, "Removes the colouring from the log output.")
	fs.BoolVar(&o.CheckCorrectness, "c", o.CheckCorrectness, "Check correctness after execution.")
	fs.BoolVar(&o.Profile, "profile", o.Profile, "Profile the algorithm, and create a pprof file.")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "YAML file of options. Flags given explicitly override it.")
}

// Parses options from command line arguments (without the program name). Also configures logging.
// Positional arguments are taken, in order, as: graph, directed, algorithm (when not given as flags).
// If a config file is given, its values replace the defaults, and explicit flags are applied on top.
func FlagsToOptions(name string, args []string, usage io.Writer) (GraphOptions, error) {
	options := DefaultOptions()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(usage)
	bindFlags(fs, &options)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return options, fmt.Errorf("%w: help requested", ErrConfiguration)
		}
		return options, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if options.ConfigFile != "" {
		fileOptions, err := LoadOptionsFile(options.ConfigFile)
		if err != nil {
			return options, err
		}
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		bindFlags(fs, &fileOptions)
		if err = fs.Parse(args); err != nil {
			return options, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		options = fileOptions
	}
	if err := applyPositional(&options, fs.Args()); err != nil {
		return options, err
	}

	if options.NoColour {
		utils.SetLoggerConsole(true)
	}
	utils.SetLevel(int(options.DebugLevel))

	if err := options.Validate(); err != nil {
		return options, err
	}
	if options.NumThreads > uint32(runtime.NumCPU()) {
		log.Warn().Msg("Thread count is greater than CPU count?")
	}
	return options, nil
}

func applyPositional(o *GraphOptions, positional []string) error {
	if len(positional) > 3 {
		return fmt.Errorf("%w: unexpected arguments: %v", ErrConfiguration, positional[3:])
	}
	if len(positional) > 0 && o.Name == "" {
		o.Name = positional[0]
	}
	if len(positional) > 1 {
		directed, err := strconv.ParseBool(positional[1])
		if err != nil {
			return fmt.Errorf("%w: directed must be a boolean, got %q", ErrConfiguration, positional[1])
		}
		o.Directed = directed
	}
	if len(positional) > 2 && o.Algorithm == "" {
		o.Algorithm = positional[2]
	}
	return nil
}

// Reads options from a YAML file. Keys match the long flag names; missing keys keep their defaults.
func LoadOptionsFile(path string) (GraphOptions, error) {
	options := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return options, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err = yaml.Unmarshal(data, &options); err != nil {
		return options, fmt.Errorf("%w: config file %s: %w", ErrConfiguration, path, err)
	}
	options.ConfigFile = path
	return options, nil
}

// Checks option values that do not depend on the algorithm.
func (o *GraphOptions) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("%w: no graph file given", ErrConfiguration)
	}
	if o.DampingFactor < 0 || o.DampingFactor > 1 {
		return fmt.Errorf("%w: damping factor must be within [0, 1], got %v", ErrConfiguration, o.DampingFactor)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations must not be negative, got %d", ErrConfiguration, o.MaxIterations)
	}
	if o.NumThreads == 0 || o.NumThreads > THREAD_MAX {
		return fmt.Errorf("%w: thread count must be within [1, %d], got %d", ErrConfiguration, THREAD_MAX, o.NumThreads)
	}
	if _, err := o.EdgeFormat(); err != nil {
		return err
	}
	return nil
}

// The edge list format; inferred from the graph file extension when not set.
func (o *GraphOptions) EdgeFormat() (string, error) {
	format := strings.ToLower(o.Format)
	if format == "" {
		if strings.HasSuffix(strings.ToLower(o.Name), ".csv") {
			return FORMAT_CSV, nil
		}
		return FORMAT_SNAP, nil
	}
	switch format {
	case FORMAT_SNAP, FORMAT_CSV:
		return format, nil
	}
	return "", fmt.Errorf("%w: unknown graph format %q", ErrConfiguration, o.Format)
}
