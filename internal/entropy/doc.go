// Package entropy implements the Kluchnik true-random byte source.
//
// The physical source is an uncontrolled free-running counter that only
// accumulates while a gate line is asserted. Gate-open duration is derived
// from live motion-sensor magnitude, so the number of increments captured in
// each ~200ms window is unpredictable even though the counter clock itself is
// deterministic. One sampled counter value is one raw entropy byte.
//
// No health tests and no bias correction are applied; an all-zero sample is a
// valid output. This source is not a certified RNG.
package entropy
