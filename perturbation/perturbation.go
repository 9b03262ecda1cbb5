// SPDX-License-Identifier: MIT

package perturbation

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownSector is returned when a label is absent from the infrastructure set.
	ErrUnknownSector = errors.New("perturbation: unknown sector")

	// ErrInvalidConfig covers count mismatches, inverted windows and non-finite values.
	ErrInvalidConfig = errors.New("perturbation: invalid configuration")
)

// Window is a closed time interval [Start, End].
type Window struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Contains reports whether t lies in the window, both ends inclusive.
func (w Window) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// Entry is one resolved perturbation: a sector index, its window and the
// demand reduction applied while the window is active.
type Entry struct {
	Sector    int
	Label     string
	Window    Window
	Magnitude float64
}

// Source produces the forcing vector c*(t) for a fixed infrastructure set.
//
// A Source is not safe for concurrent use. Sweep workers should each own a
// Clone; the infrastructure set itself is never mutated after New.
type Source struct {
	infra   []string
	index   map[string]int
	entries []Entry
}

// New returns an empty Source over infra. Labels are copied; a duplicated
// label resolves to its first position.
func New(infra []string) *Source {
	labels := make([]string, len(infra))
	copy(labels, infra)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := index[l]; !dup {
			index[l] = i
		}
	}

	return &Source{infra: labels, index: index}
}

// Len returns the number of sectors (length of every forcing vector).
func (s *Source) Len() int { return len(s.infra) }

// Entries returns a copy of the active perturbation set in configuration order.
func (s *Source) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)

	return out
}

// Clone returns an independent Source with the same configuration.
func (s *Source) Clone() *Source {
	return &Source{
		infra:   s.infra, // immutable after New
		index:   s.index, // immutable after New
		entries: s.Entries(),
	}
}

// Reconfigure replaces the active perturbation set.
//
// sectors are resolved against the infrastructure set. windows may be empty,
// in which case every sector gets the degenerate window [0,0] (active at t=0
// only). magnitudes may be empty, in which case the magnitudes of the previous
// configuration are reused positionally. After defaulting, windows and
// magnitudes must both have len(sectors) entries.
//
// On error the previous configuration is left untouched.
func (s *Source) Reconfigure(sectors []string, windows []Window, magnitudes []float64) error {
	if len(windows) == 0 {
		windows = make([]Window, len(sectors))
	}
	if len(magnitudes) == 0 {
		magnitudes = make([]float64, 0, len(s.entries))
		for _, e := range s.entries {
			magnitudes = append(magnitudes, e.Magnitude)
		}
	}
	if len(windows) != len(sectors) {
		return fmt.Errorf("%w: %d windows for %d sectors", ErrInvalidConfig, len(windows), len(sectors))
	}
	if len(magnitudes) != len(sectors) {
		return fmt.Errorf("%w: %d magnitudes for %d sectors", ErrInvalidConfig, len(magnitudes), len(sectors))
	}

	entries := make([]Entry, len(sectors))
	for i, label := range sectors {
		idx, ok := s.index[label]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSector, label)
		}
		w := windows[i]
		if math.IsNaN(w.Start) || math.IsNaN(w.End) || w.Start > w.End {
			return fmt.Errorf("%w: window [%v,%v] for %q", ErrInvalidConfig, w.Start, w.End, label)
		}
		c := magnitudes[i]
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: magnitude %v for %q", ErrInvalidConfig, c, label)
		}
		entries[i] = Entry{Sector: idx, Label: label, Window: w, Magnitude: c}
	}
	s.entries = entries

	return nil
}

// Forcing returns c*(t): zero everywhere except the sectors whose window
// contains t. When several entries target the same sector and are active at
// t, the one configured last wins; magnitudes are assigned, not summed.
// The returned slice is freshly allocated.
func (s *Source) Forcing(t float64) []float64 {
	c := make([]float64, len(s.infra))
	for _, e := range s.entries {
		if e.Window.Contains(t) {
			c[e.Sector] = e.Magnitude
		}
	}

	return c
}
