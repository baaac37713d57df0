package graph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

const lineBufferSize = 1 << 20

// Loads the graph named in the options (and the optional vertex file), then finalizes it.
func LoadGraph[V any, M any](g *Graph[V, M]) error {
	format, err := g.Options.EdgeFormat()
	if err != nil {
		return err
	}
	if g.Options.VertexFile != "" {
		if err = loadFile(g.Options.VertexFile, func(r io.Reader) error { return LoadVertices(g, r) }); err != nil {
			return err
		}
	}
	if err = loadFile(g.Options.Name, func(r io.Reader) error { return LoadEdges(g, r, format) }); err != nil {
		return err
	}
	if g.NodeVertexCount() == 0 {
		return fmt.Errorf("%w: graph %s is empty", ErrLoad, g.Options.Name)
	}
	if err = g.Finalize(); err != nil {
		return err
	}
	log.Info().Msg("Loaded " + g.Options.Name + ": vertices " + utils.V(g.NodeVertexCount()) + " edges " + utils.V(g.NumEdges) +
		" in (ms) " + utils.V(g.Watch.Elapsed().Milliseconds()))
	return nil
}

func loadFile(path string, loader func(r io.Reader) error) error {
	file, err := utils.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer file.Close()
	if err = loader(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Adds edges read in the given format. Endpoints are created as needed.
func LoadEdges[V any, M any](g *Graph[V, M], r io.Reader, format string) error {
	switch format {
	case FORMAT_SNAP:
		return loadSnap(r, 2, func(fields []string, line int) error {
			src, dst, err := parseEdge(fields, line)
			if err != nil {
				return err
			}
			return g.AddEdge(src, dst)
		})
	case FORMAT_CSV:
		return loadCSV(g, r)
	}
	return fmt.Errorf("%w: unknown graph format %q", ErrConfiguration, format)
}

// Adds vertices from a list of raw ids, one per line. Extra fields on a line are ignored.
func LoadVertices[V any, M any](g *Graph[V, M], r io.Reader) error {
	return loadSnap(r, 1, func(fields []string, line int) error {
		raw, err := ParseRawType(fields[0])
		if err != nil {
			return fmt.Errorf("%w: line %d: bad vertex id %q", ErrLoad, line, fields[0])
		}
		_, err = g.AddVertex(raw)
		return err
	})
}

// Whitespace separated lines of at least minFields fields. Blank lines, and lines starting with '#' or '%', are skipped.
func loadSnap(r io.Reader, minFields int, onLine func(fields []string, line int) error) error {
	lines := utils.FastFileLines{Buf: make([]byte, lineBufferSize)}
	fieldBuff := make([]string, 4)
	for lineNum := 1; ; lineNum++ {
		lineText, err := lines.Scan(r)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrLoad, lineNum, err)
		}
		numFields := utils.FastFields(fieldBuff, lineText)
		if numFields == 0 || fieldBuff[0][0] == '#' || fieldBuff[0][0] == '%' {
			continue
		}
		if numFields < minFields {
			return fmt.Errorf("%w: line %d: expected at least %d fields, got %d", ErrLoad, lineNum, minFields, numFields)
		}
		if err = onLine(fieldBuff[:utils.Min(numFields, len(fieldBuff))], lineNum); err != nil {
			return err
		}
	}
}

func parseEdge(fields []string, line int) (src RawType, dst RawType, err error) {
	if src, err = ParseRawType(strings.TrimSpace(fields[0])); err != nil {
		return 0, 0, fmt.Errorf("%w: line %d: bad source id %q", ErrLoad, line, fields[0])
	}
	if dst, err = ParseRawType(strings.TrimSpace(fields[1])); err != nil {
		return 0, 0, fmt.Errorf("%w: line %d: bad target id %q", ErrLoad, line, fields[1])
	}
	return src, dst, nil
}

// Comma separated src,dst[,...] rows. A first row that does not parse as ids is taken as a header.
func loadCSV[V any, M any](g *Graph[V, M], r io.Reader) error {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("%w: %w", ErrLoad, err)
		}
		if len(record) < 2 {
			return fmt.Errorf("%w: row %d: expected at least 2 fields, got %d", ErrLoad, row, len(record))
		}
		src, dst, err := parseEdge(record, row)
		if err != nil {
			if row == 1 {
				log.Debug().Msg("Skipping csv header: " + strings.Join(record, ","))
				continue
			}
			return err
		}
		if err = g.AddEdge(src, dst); err != nil {
			return err
		}
	}
}
