// Package perturbation holds the time-windowed external demand reduction
// c*(t) that drives the inoperability models.
//
// A Source is configured with (sector, window, magnitude) triples and answers
// "what is the forcing vector at time t". Windows are closed intervals. Two
// active entries on the same sector do not add up: the later one overwrites
// the earlier one.
//
// The Source is the only mutable object in the model. It is meant to be
// reconfigured in place between runs of a what-if sweep, one goroutine at a
// time; concurrent sweeps give each worker its own Clone.
package perturbation
