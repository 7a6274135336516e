// Package device implements the Kluchnik control plane: the session
// configuration, the menu controller driven by the three buttons (or their
// remote equivalents), and the generation orchestrator that sequences entropy
// draws, password derivation, transport encryption and display output.
//
// A generation cycle is fully blocking: every entropy byte costs one ~200ms
// gate window, so a run takes length x 200ms plus one extra window per
// filtered-out character. No input is serviced while it runs and there is no
// cancellation, matching the firmware behavior.
package device
