// Package iim builds and runs Inoperability Input-Output Models.
//
// A Model is built once from a set of infrastructure labels and one of three
// table representations:
//
//   - InputOutputTable: economic transactions x(i,j) and outputs X(j). In
//     demand mode A* = A with A[i,j] = x(i,j)/X(j); in supply mode A* = Aᵀ.
//   - InterdependencyTable: A* given directly.
//   - ConsequenceTable: ordinal scores mapped to A* by a power law
//     (see package mapping).
//
// Build rejects any A* whose spectral radius is at least one, since
// S = (I − A*)⁻¹ is then not the limit of the Neumann series Σ A*^k.
//
// Simulations:
//
//	static    q = S·c*(0)
//	dynamic   q[k] = K(A*q[k−1] + c*(k) − q[k−1]) + q[k−1]
//	recovery  q[k] = exp(−K(I − A*)k)·q(0)
//
// where c*(t) is the forcing of the model's perturbation source and K is the
// diagonal resilience matrix (explicit, derived from recovery times, or the
// identity).
//
// The matrices are immutable after Build. The perturbation source can be
// reconfigured in place with SetPerturbation for what-if runs; Fork gives a
// goroutine its own source over the same matrices.
//
// References:
//   - Haimes & Jiang (2001), Leontief-based model of risk in complex
//     interconnected infrastructures.
//   - Haimes et al. (2005), Inoperability input-output model for
//     interdependent infrastructure sectors I and II.
//   - Lian & Haimes (2006), Managing the risk of terrorism to interdependent
//     infrastructure systems through the dynamic inoperability input-output model.
//   - Setola, De Porcellinis & Sforna (2009), Critical infrastructure
//     dependency assessment using the input-output inoperability model.
package iim
