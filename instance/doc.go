// Package instance holds the immutable problem data of the test-selection
// problem: n binary tests, m diseases, a positive cost per test and an n×m 0/1
// coverage matrix whose row k is the result pattern of test k.
//
// It provides:
//
//   - New, Parse, ParseFile: validated construction (the only ways to obtain
//     an *Instance).
//   - Write, WriteFile: the plain-text instance format, round-trip exact.
//   - Pairs, Rows: the m(m−1)/2 distinguishing constraints of the model.
//   - Validate: an independent check that a 0/1 selection distinguishes every
//     pair of diseases.
//   - Generate: deterministic seeded random instances.
//
// Instance file format (whitespace-separated tokens, one record per line):
//
//	n
//	m
//	c_1 c_2 … c_n
//	A(1,1) … A(1,m)
//	…
//	A(n,1) … A(n,m)
package instance
