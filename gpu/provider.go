// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by device providers that expose their HAL
// device and queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewBackendFromProvider creates a HALBackend sharing the device and queue
// of a host application. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewBackendFromProvider(provider gpucontext.DeviceProvider) (*HALBackend, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrNoHALProvider)
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoHALProvider, provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}

	info := provider.AdapterInfo()
	slogger().Info("gpu: using shared device", "adapter", info.Name, "type", info.Type)
	return NewHALBackend(device, queue), nil
}
