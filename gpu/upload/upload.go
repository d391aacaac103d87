// Package upload implements the GPU resource coordinator's
// upload ring: a per-ring-slot CPU staging buffer that
// accumulates arbitrary byte uploads during a frame and, at
// the start of the frame that reuses the slot, copies them
// into a host-visible GPU buffer sized to exactly fit that
// frame's uploads.
package upload

import "github.com/kestrelui/core/driver"

// Task is a pending copy recorded against a staged byte range.
// Commit is called once the GPU-visible staging buffer exists
// at its final size for the frame, with off the byte offset
// within that buffer where the staged data landed.
type Task struct {
	Off    int64
	Size   int64
	Commit func(cb driver.CmdBuffer, staging driver.Buffer, off int64)
}

// Ring is a single ring slot's upload staging buffer.
// The zero value is ready to use.
type Ring struct {
	cpu   []byte
	tasks []Task
	gpu   driver.Buffer
	gcap  int64
}

// Stage appends data to the CPU-side staging vector and
// records a copy task to run against it once the GPU buffer
// is ready. It returns the offset assigned to data within the
// eventual GPU buffer, stable for the remainder of the frame.
func (r *Ring) Stage(data []byte, commit func(cb driver.CmdBuffer, staging driver.Buffer, off int64)) int64 {
	off := int64(len(r.cpu))
	r.cpu = append(r.cpu, data...)
	r.tasks = append(r.tasks, Task{Off: off, Size: int64(len(data)), Commit: commit})
	return off
}

// Pending reports the number of bytes staged so far this
// frame.
func (r *Ring) Pending() int64 { return int64(len(r.cpu)) }

// Flush grows or shrinks the slot's GPU buffer to exactly fit
// this frame's uploads (power-of-two capacity, recreated only
// when the target size differs from the current one), copies
// the staged CPU bytes in, and runs every pending copy task's
// Commit callback in FIFO order against cb. release, if
// non-nil, is called with the previous GPU buffer when it is
// replaced, so the caller can defer its destruction rather
// than destroying an in-flight resource directly.
// The CPU vector and pending task list are cleared for the
// next frame regardless of outcome.
func (r *Ring) Flush(gpu driver.GPU, cb driver.CmdBuffer, release func(driver.Buffer)) error {
	defer func() {
		r.cpu = r.cpu[:0]
		r.tasks = r.tasks[:0]
	}()

	need := int64(len(r.cpu))
	if need == 0 {
		return nil
	}

	target := nextPow2(need)
	if r.gpu == nil || target != r.gcap {
		buf, err := gpu.NewBuffer(target, true, driver.UGeneric)
		if err != nil {
			return err
		}
		if r.gpu != nil && release != nil {
			release(r.gpu)
		}
		r.gpu = buf
		r.gcap = target
	}

	copy(r.gpu.Bytes()[:need], r.cpu)
	for _, t := range r.tasks {
		t.Commit(cb, r.gpu, t.Off)
	}
	return nil
}

// Free releases the slot's GPU buffer, if any, via release
// (or destroys it directly if release is nil).
func (r *Ring) Free(release func(driver.Buffer)) {
	if r.gpu == nil {
		return
	}
	if release != nil {
		release(r.gpu)
	} else {
		r.gpu.Destroy()
	}
	r.gpu = nil
	r.gcap = 0
}

func nextPow2(n int64) int64 {
	if n <= 1 {
		return 1
	}
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return p
}
