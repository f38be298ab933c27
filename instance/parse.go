package instance

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single input line (a coverage row of m tokens).
const maxLineBytes = 16 << 20

// lineReader yields non-blank lines with their 1-based physical line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &lineReader{sc: sc}
}

// next returns the fields of the next non-blank line. ok is false at EOF.
func (lr *lineReader) next() (fields []string, ok bool, err error) {
	for lr.sc.Scan() {
		lr.line++
		fields = strings.Fields(lr.sc.Text())
		if len(fields) > 0 {
			return fields, true, nil
		}
	}
	if err = lr.sc.Err(); err != nil {
		return nil, false, fmt.Errorf("instance: read: %w", err)
	}

	return nil, false, nil
}

// record reads the next line for the named record, failing if input ended.
func (lr *lineReader) record(what string) ([]string, error) {
	fields, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ParseError{Msg: fmt.Sprintf("unexpected end of input, missing %s", what)}
	}

	return fields, nil
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return &ParseError{Line: lr.line, Msg: fmt.Sprintf(format, args...)}
}

// positiveInt reads a line holding exactly one positive integer.
func (lr *lineReader) positiveInt(what string) (int, error) {
	fields, err := lr.record(what)
	if err != nil {
		return 0, err
	}
	if len(fields) != 1 {
		return 0, lr.errorf("%s: want 1 token, got %d", what, len(fields))
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, lr.errorf("%s: %q is not an integer", what, fields[0])
	}
	if v <= 0 {
		return 0, lr.errorf("%s: %d must be positive", what, v)
	}

	return v, nil
}

// Parse reads an instance in the plain-text format described in the package
// documentation.
//
// Blank lines are skipped; lines after the n+3 required records are ignored.
// Any malformed record yields a *ParseError (errors.Is(err, ErrMalformed)),
// so callers never observe a partially parsed Instance.
//
// Complexity: O(n·m) time and memory.
func Parse(r io.Reader) (*Instance, error) {
	lr := newLineReader(r)

	n, err := lr.positiveInt("number of tests")
	if err != nil {
		return nil, err
	}
	m, err := lr.positiveInt("number of diseases")
	if err != nil {
		return nil, err
	}

	// Stage 2: costs.
	fields, err := lr.record("test costs")
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, lr.errorf("test costs: want %d tokens, got %d", n, len(fields))
	}
	cost := make([]float64, n)
	var k, j int
	for k = 0; k < n; k++ {
		cost[k], err = strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return nil, lr.errorf("test costs: token %d: %q is not a number", k+1, fields[k])
		}
		if math.IsNaN(cost[k]) || math.IsInf(cost[k], 0) || cost[k] <= 0 {
			return nil, lr.errorf("test costs: token %d: %s must be finite and positive", k+1, fields[k])
		}
	}

	// Stage 3: coverage rows.
	coverage := make([][]float64, n)
	for k = 0; k < n; k++ {
		fields, err = lr.record(fmt.Sprintf("coverage row %d of %d", k+1, n))
		if err != nil {
			return nil, err
		}
		if len(fields) != m {
			return nil, lr.errorf("coverage row %d: want %d tokens, got %d", k+1, m, len(fields))
		}
		coverage[k] = make([]float64, m)
		for j = 0; j < m; j++ {
			switch fields[j] {
			case "0":
			case "1":
				coverage[k][j] = 1
			default:
				return nil, lr.errorf("coverage row %d: token %d: %q is not 0 or 1", k+1, j+1, fields[j])
			}
		}
	}

	return New(cost, coverage)
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instance: open %q: %w", path, err)
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return inst, nil
}
