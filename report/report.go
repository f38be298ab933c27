// Package report renders search outcomes as the one-line JSON records printed
// by the testsel command.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/katalvlaran/testsel/bnb"
	"github.com/katalvlaran/testsel/instance"
)

// Labels used in place of a numeric Result.
const (
	LabelInfeasible = "INFEASIBLE"
	LabelNone       = "NONE"
	LabelError      = "ERROR"
)

// SolutionOptimal marks a proven optimum in Record.Solution.
const SolutionOptimal = "OPT"

// Record is one solved instance. Field names are part of the output format.
type Record struct {
	Instance string
	Time     string
	Result   Objective
	Solution string
	Valid    bool
	Error    string `json:",omitempty"`
}

// Objective is either a numeric value or a label such as "INFEASIBLE".
type Objective struct {
	Value float64
	Label string
}

// MarshalJSON prints integral values without a fractional part, other values
// with the shortest round-trip representation, and labels as strings.
func (o Objective) MarshalJSON() ([]byte, error) {
	if o.Label != "" {
		return json.Marshal(o.Label)
	}
	if math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
		return nil, fmt.Errorf("report: objective %v is not representable", o.Value)
	}
	if o.Value == math.Trunc(o.Value) && math.Abs(o.Value) < 1<<53 {
		return []byte(strconv.FormatInt(int64(o.Value), 10)), nil
	}

	return []byte(strconv.FormatFloat(o.Value, 'g', -1, 64)), nil
}

func (o Objective) String() string {
	b, err := o.MarshalJSON()
	if err != nil {
		return fmt.Sprint(o.Value)
	}

	return string(b)
}

// FormatSeconds renders d in seconds with two decimals.
func FormatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 2, 64)
}

// New builds the record of res for the instance read from path. The
// assignment, if any, is re-checked with instance.Validate.
func New(path string, inst *instance.Instance, res bnb.Result) Record {
	r := Record{
		Instance: filepath.Base(path),
		Time:     FormatSeconds(res.Elapsed),
		Solution: solution(res.Status),
	}
	switch {
	case res.Found():
		r.Result = Objective{Value: res.Objective}
		r.Valid = instance.Validate(res.Assignment, inst.Coverage())
	case res.Status == bnb.StatusInfeasible:
		r.Result = Objective{Label: LabelInfeasible}
	default:
		r.Result = Objective{Label: LabelNone}
	}

	return r
}

// Failed builds the record of an instance that could not be solved.
func Failed(path string, elapsed time.Duration, err error) Record {
	return Record{
		Instance: filepath.Base(path),
		Time:     FormatSeconds(elapsed),
		Result:   Objective{Label: LabelError},
		Solution: LabelError,
		Error:    err.Error(),
	}
}

func solution(s bnb.Status) string {
	if s == bnb.StatusOptimal {
		return SolutionOptimal
	}

	return s.String()
}

// Write encodes r as one JSON line.
func Write(w io.Writer, r Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encode %s: %w", r.Instance, err)
	}

	return nil
}
