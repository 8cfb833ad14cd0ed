package usage

import (
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is the time attributed to one label: an application in the
// activity list or a weekday in the chart.
type Entry struct {
	Label   string
	Seconds int64
}

// MarshalJSON encodes the entry as a two-element array: ["label", seconds].
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Label, e.Seconds})
}

// UnmarshalJSON decodes the ["label", seconds] array form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw []jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding entry: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("decoding entry: want 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Label); err != nil {
		return fmt.Errorf("decoding entry label: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Seconds); err != nil {
		return fmt.Errorf("decoding entry seconds: %w", err)
	}
	return nil
}

// SortEntries orders entries by seconds descending, then label ascending.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Seconds != entries[j].Seconds {
			return entries[i].Seconds > entries[j].Seconds
		}
		return entries[i].Label < entries[j].Label
	})
}

// TotalSeconds sums the seconds of all entries.
func TotalSeconds(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Seconds
	}
	return total
}

// MaxSeconds returns the largest value in entries, or 1 when there is no
// positive value, so it is always safe to divide by.
func MaxSeconds(entries []Entry) int64 {
	var m int64
	for _, e := range entries {
		if e.Seconds > m {
			m = e.Seconds
		}
	}
	if m <= 0 {
		return 1
	}
	return m
}

// Percent returns value/max as a percentage clamped to [0, 100].
func Percent(value, max int64) float64 {
	if max <= 0 {
		max = 1
	}
	p := float64(value) / float64(max) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
