// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sdf

import "errors"

// Sentinel errors for sdf package.
var (
	// ErrEmptyShape is returned by Validate for a shape without edges.
	ErrEmptyShape = errors.New("sdf: shape has no edges")

	// ErrOpenContour is returned by Validate when a contour does not end
	// where it starts.
	ErrOpenContour = errors.New("sdf: contour is not closed")

	// ErrDegenerateContour is returned by Validate for a contour that
	// encloses no area, such as a spike or a collinear loop.
	ErrDegenerateContour = errors.New("sdf: contour encloses no area")

	// ErrNonFinite is returned by Validate for NaN or infinite points.
	ErrNonFinite = errors.New("sdf: non-finite point")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "sdf: invalid config." + e.Field + ": " + e.Reason
}
