// Package window generates analysis window coefficient tables.
//
// Tables are generated once per configuration and treated as immutable
// data afterwards; callers that apply a window per frame multiply by the
// cached table instead of re-evaluating the window function.
package window
