// Package gpu defines the GPU resources the text renderer needs and the
// backends that provide them.
//
// A Backend creates host-visible vertex and staging buffers, a single-channel
// atlas image, tracks image layouts and copies staging regions into images.
// Two implementations are provided:
//
//   - MemoryBackend keeps every resource in CPU memory. It is the software
//     path and the test double for the renderer.
//   - HALBackend maps resources onto a gogpu/wgpu hal.Device and hal.Queue.
//     NewBackendFromProvider builds one from a gpucontext.DeviceProvider that
//     exposes its HAL device and queue.
//
// The vertex layout consumed by the text shader is four float32 values per
// vertex: destination x and y in pixels followed by normalized atlas u and v.
package gpu
