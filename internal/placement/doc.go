// Package placement computes where and how large a design lands on a shirt
// template, and produces the composited mockup.
//
// Templates fall into a closed set of categories (Plain, Model) resolved once
// per template from its label. Each category carries its own Params, so a
// design on a model shot can sit lower and smaller than on a flat-laid shirt.
//
// Compute and Composite are pure: no shared state, no caching, no I/O. They
// may be called concurrently for independent (design, template) pairs.
package placement
