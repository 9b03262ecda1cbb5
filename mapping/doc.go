// Package mapping converts qualitative consequence assessments into
// quantitative interdependency coefficients.
//
// Scores on an N-point ordinal scale are mapped with a fitted power law
//
//	a*_ij = a · C^b
//
// where C is the consequence score. The (a, b) pairs are fitted to Table 1 of
// Setola, De Porcellinis & Sforna (2009), "Critical infrastructure dependency
// assessment using the input-output inoperability model", IJCIP 2, 170-178.
//
// Two scales are defined:
//
//	5-point: a = 0.008, b = 2.569323442 (score 5 maps to 0.5)
//	4-point: a = 0.01,  b = 2.821928095 (score 4 maps to 0.5)
//
// The package is pure and stateless.
package mapping
