// Package analysis looks at sampled series from a run. A ball resting on
// another ball, or a cradle passing momentum back and forth, shows up as
// a periodic vertical velocity; PowerSpectrum and DominantPeriod find it.
package analysis
