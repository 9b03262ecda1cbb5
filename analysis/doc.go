// Package analysis tabulates model indices and runs perturbation sweeps.
//
// The tables mirror the sheets a risk analyst writes back into the data
// workbook: dependency and influence per sector, and the strongest
// first-, second- and third-order interdependencies.
//
// Sweeps perturb every sector (SweepSingle) or every pair of sectors
// (SweepPairs) with the same magnitude and window, simulate, and report the
// resulting impact. Cases run concurrently on forks of the model, so the
// caller's model and its perturbation are never touched.
//
// Cascade walks A* breadth-first from one sector and reports the order in
// which an outage reaches the others, with the dependency chain behind each.
package analysis
