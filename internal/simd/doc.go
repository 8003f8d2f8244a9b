// Package simd provides CPU capability detection for the vector register
// widths the SIMD scorer can be configured with, plus the lane-group
// kernels the scorer's hot loop is built on.
//
// A lane group is K lanes of a scalar width W' packed into one logical
// vector of K*W' bits. The kernels are pure Go over lane slices, written
// so the compiler can keep them in registers and auto-vectorize; the
// capability gate keeps the configuration surface identical to a build
// with platform intrinsics: vector widths the host CPU cannot execute are
// rejected when the scorer is constructed.
package simd
