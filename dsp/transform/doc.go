// Package transform adapts forward DFT implementations to a single
// in-place capability, [Transformer].
//
// Analysis code depends only on the interface; the concrete backend is
// picked per configuration. All backends are unnormalised and follow the
// usual DFT conventions: bin 0 is DC and bin n/2 is Nyquist for even n.
package transform
