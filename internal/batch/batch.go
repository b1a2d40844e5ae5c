// Package batch parses many release names concurrently.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/Nomadcxx/animename/internal/release"
	"golang.org/x/sync/errgroup"
)

// Result pairs an input name with its parsed element.
type Result struct {
	Name    string           `json:"name"`
	Element *release.Element `json:"element"`
}

// Progress is told about every parsed name.
type Progress interface {
	Increment()
}

// ParseAll parses names with at most limit workers and returns the elements
// in input order. limit <= 0 uses one worker per CPU. It stops early with
// the context's error when ctx is cancelled.
func ParseAll(ctx context.Context, names []string, limit int) ([]*release.Element, error) {
	return ParseAllProgress(ctx, names, limit, nil)
}

// ParseAllProgress is ParseAll reporting each finished name to p, which may
// be nil. p is called from the worker goroutines.
func ParseAllProgress(ctx context.Context, names []string, limit int, p Progress) ([]*release.Element, error) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	out := make([]*release.Element, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = release.Parse(name)
			if p != nil {
				p.Increment()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop may have stopped before any worker saw the cancellation
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseResults is ParseAll with each element paired to its name.
func ParseResults(ctx context.Context, names []string, limit int) ([]Result, error) {
	elems, err := ParseAll(ctx, names, limit)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(names))
	for i, name := range names {
		results[i] = Result{Name: name, Element: elems[i]}
	}
	return results, nil
}

// ReadNames reads one name per line, skipping blank lines and lines
// starting with '#'.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return names, nil
}
