// Package task holds the quantum task vocabulary shared by the service layer
// and the analysis packages: status values, execution outcomes, and the
// conversion of raw measurement shots into an outcome histogram.
package task

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/qntx-braket/errors"
)

// Status is the lifecycle state of a quantum task, using the Braket
// vocabulary verbatim.
type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusQueued     Status = "QUEUED"
	StatusRunning    Status = "RUNNING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusCancelling Status = "CANCELLING"
	StatusCancelled  Status = "CANCELLED"
)

// ParseStatus maps a provider status string to a Status. Anything outside
// the vocabulary is reported as FAILED.
func ParseStatus(s string) Status {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusCreated, StatusQueued, StatusRunning, StatusCompleted,
		StatusFailed, StatusCancelling, StatusCancelled:
		return st
	default:
		return StatusFailed
	}
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Result is the outcome of a quantum task. Measurements and Counts are only
// populated once the task has COMPLETED.
type Result struct {
	TaskID        string         `json:"task_id"`
	Status        Status         `json:"status"`
	Measurements  [][]int        `json:"measurements,omitempty"`
	Counts        map[string]int `json:"counts,omitempty"`
	Device        string         `json:"device"`
	Shots         int            `json:"shots"`
	ExecutionTime *float64       `json:"execution_time,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// TotalCounts sums the histogram.
func (r Result) TotalCounts() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Submission is returned when a task is accepted by the provider.
type Submission struct {
	TaskID    string `json:"task_id"`
	Status    Status `json:"status"`
	DeviceARN string `json:"device_arn"`
	Shots     int    `json:"shots"`
}

// DecodeResult builds a Result from a tool argument (decoded JSON object or
// JSON string). Only counts and shots are needed downstream, so a bare
// {"counts": {...}, "shots": N} is accepted.
func DecodeResult(raw any) (Result, error) {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return Result{}, errors.NewInvalidRequestError("result is required")
	case string:
		data = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrInvalidRequest, err.Error())
		}
		data = b
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, errors.Wrap(errors.ErrInvalidRequest, "result is not valid JSON: "+err.Error())
	}
	if r.Counts == nil && len(r.Measurements) > 0 {
		r.Counts = CountsFromMeasurements(r.Measurements)
	}
	return r, nil
}

// CountsFromMeasurements folds per-shot bit vectors into a histogram keyed
// by bitstring, qubit 0 leftmost.
func CountsFromMeasurements(measurements [][]int) map[string]int {
	counts := make(map[string]int)
	var b strings.Builder
	for _, shot := range measurements {
		b.Reset()
		for _, bit := range shot {
			b.WriteString(strconv.Itoa(bit))
		}
		counts[b.String()]++
	}
	return counts
}

// CountsFromProbabilities approximates a histogram from outcome
// probabilities. Rounding residue is assigned to outcomes in descending
// fractional-part order so the total equals shots.
func CountsFromProbabilities(probs map[string]float64, shots int) map[string]int {
	counts := make(map[string]int, len(probs))
	if shots <= 0 || len(probs) == 0 {
		return counts
	}

	type frac struct {
		key  string
		part float64
	}
	fracs := make([]frac, 0, len(probs))
	assigned := 0
	for k, p := range probs {
		exact := p * float64(shots)
		whole := math.Floor(exact)
		counts[k] = int(whole)
		assigned += int(whole)
		fracs = append(fracs, frac{key: k, part: exact - whole})
	}
	sort.Slice(fracs, func(i, j int) bool {
		if fracs[i].part == fracs[j].part {
			return fracs[i].key < fracs[j].key
		}
		return fracs[i].part > fracs[j].part
	})
	for i := 0; assigned < shots && i < len(fracs); i++ {
		if fracs[i].part == 0 {
			break
		}
		counts[fracs[i].key]++
		assigned++
	}
	for k, n := range counts {
		if n == 0 {
			delete(counts, k)
		}
	}
	return counts
}
