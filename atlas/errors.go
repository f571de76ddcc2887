// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import "errors"

// Sentinel errors for the atlas package.
var (
	// ErrAtlasFull is returned when no free rectangle can hold a request.
	ErrAtlasFull = errors.New("atlas: atlas full")

	// ErrInvalidSize is returned for non-positive request or canvas sizes.
	ErrInvalidSize = errors.New("atlas: invalid size")

	// ErrShrink is returned when Resize would make the canvas smaller.
	ErrShrink = errors.New("atlas: canvas can only grow")
)
