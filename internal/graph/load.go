package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load builds a graph from a web-link list: one edge per line, two
// whitespace-separated tokens (source target). Blank lines are skipped.
// Any other token count is a parse error naming the offending line.
func Load(r io.Reader) (*Graph, error) {
	g := New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("graph: line %d: want 2 fields, got %d", lineNo, len(fields))
		}
		g.AddEdge(fields[0], fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("graph: read input: %w", err)
	}
	return g, nil
}

// LoadFile loads a graph from the web-link list at path.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
