// Package testutil provides testing utilities for cosmeans.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible point sets and checks cluster purity.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.GaussianPoints(1000, 16)
//	pts, labels := rng.ClusteredPoints(1000, 16, 8, 0.05)
//
// # Purity
//
//	purity := testutil.Purity(labels, res.Assignments)
package testutil
