// Package diim is a toolkit for inoperability input-output modelling of
// interdependent infrastructures: how a loss of function in one sector
// (power, water, telecom, transport…) spreads to the sectors that depend on it.
//
// 🚀 What is in diim?
//
//   - Static model: equilibrium inoperability q = (I − A*)⁻¹·c*
//   - Dynamic models: demand-reduction recurrence and exponential recovery
//   - Three ways to obtain A*: a direct interdependency table, an ordinal
//     consequence table mapped through a power law, or an economic
//     input-output table in demand or supply form
//   - Indices: dependency δ, influence ρ, their overall forms, and n-th order
//     interdependencies
//   - Sweeps: single-sector and pairwise attacks, run concurrently
//   - Cascades: breadth-first propagation order of an outage through A*
//
// Packages:
//
//	iim/:          Model, Build, simulations and indices
//	perturbation/: windowed demand-reduction sources c*(t)
//	mapping/:      4-point and 5-point consequence scales
//	matrix/:       dense kernels on top of gonum (inverse, expm, eigenvalues)
//	analysis/:     report tables, sweeps and cascades
//	scenario/:     YAML scenario files, CSV and xlsx tables
//	cmd/diim/:     the command-line front end
//
// Quick example (two sectors, A fed by B):
//
//	m, _ := iim.Build([]string{"A", "B"},
//		iim.InterdependencyTable{AStar: [][]float64{{0, 0.3}, {0.4, 0}}},
//		iim.WithPerturbation([]string{"B"}, nil, []float64{0.5}))
//	q, _ := m.StaticInoperability() // [0.1705 0.5682]
//
//	go install github.com/katalvlaran/diim/cmd/diim@latest
package diim
