package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Write emits inst in the format read by Parse. Costs use the shortest
// representation that parses back to the identical float64.
func Write(w io.Writer, inst *Instance) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n%d\n", inst.n, inst.m)
	for k, c := range inst.cost {
		if k > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
	}
	sb.WriteByte('\n')
	inst.writeRows(&sb)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(sb.String()); err != nil {
		return fmt.Errorf("instance: write: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("instance: write: %w", err)
	}

	return nil
}

// WriteFile writes inst to path, creating or truncating it.
func WriteFile(path string, inst *Instance) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("instance: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("instance: close %q: %w", path, cerr)
		}
	}()

	return Write(f, inst)
}
