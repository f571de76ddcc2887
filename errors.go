// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import "errors"

var (
	// ErrClosed is returned by RenderText after Close.
	ErrClosed = errors.New("textatlas: renderer closed")

	// ErrInvalidText is returned for a Text without a font or with a
	// non-positive size.
	ErrInvalidText = errors.New("textatlas: invalid text")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "textatlas: invalid config." + e.Field + ": " + e.Reason
}
