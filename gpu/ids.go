// Package gpu implements the GPU resource coordinator: frame-ring
// deferred release, a staging upload ring, a pre-frame task queue,
// bindless texture/sampler slot tables, timestamp/statistics
// queries and a main+scratch framebuffer set.
package gpu

import "github.com/kestrelui/core/gpu/respool"

// TextureId identifies a slot in the bindless texture
// descriptor array. The zero value is not a valid id.
type TextureId = respool.TextureId

// SamplerId identifies a slot in the bindless sampler
// descriptor array. The zero value is not a valid id.
type SamplerId = respool.SamplerId

// NoTexture is the sentinel TextureId returned on allocation
// failure.
const NoTexture = respool.NoTexture

// NoSampler is the sentinel SamplerId returned on allocation
// failure.
const NoSampler = respool.NoSampler

// FrameId numbers frames monotonically, starting at 0.
type FrameId int64
