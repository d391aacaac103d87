package upload

import (
	"bytes"
	"testing"

	"github.com/kestrelui/core/driver"
	_ "github.com/kestrelui/core/driver/null"
)

func openNull(t *testing.T) driver.GPU {
	t.Helper()
	for _, d := range driver.Drivers() {
		if d.Name() == "null" {
			g, err := d.Open()
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			return g
		}
	}
	t.Fatal("null driver not registered")
	return nil
}

func TestStageAndFlushCopiesBytes(t *testing.T) {
	g := openNull(t)
	cb, err := g.NewCmdBuffer()
	if err != nil {
		t.Fatalf("NewCmdBuffer: %v", err)
	}
	cb.Begin()

	dst, err := g.NewBuffer(64, true, driver.UGeneric)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}

	var r Ring
	want := []byte("hello upload ring")
	r.Stage(want, func(cb driver.CmdBuffer, staging driver.Buffer, off int64) {
		cb.CopyBuffer(&driver.BufferCopy{
			From: staging, FromOff: off,
			To: dst, ToOff: 0,
			Size: int64(len(want)),
		})
	})

	if err := r.Flush(g, cb, nil); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := dst.Bytes()[:len(want)]
	if !bytes.Equal(got, want) {
		t.Fatalf("dst bytes = %q, want %q", got, want)
	}
}

func TestFlushResizesCapacityToTarget(t *testing.T) {
	g := openNull(t)
	cb, _ := g.NewCmdBuffer()
	cb.Begin()

	var r Ring
	var released []driver.Buffer
	release := func(b driver.Buffer) { released = append(released, b) }

	small := make([]byte, 10)
	r.Stage(small, func(cb driver.CmdBuffer, staging driver.Buffer, off int64) {})
	if err := r.Flush(g, cb, release); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if r.gcap != 16 {
		t.Fatalf("capacity after staging 10 bytes = %d, want 16 (next pow2)", r.gcap)
	}

	big := make([]byte, 100)
	r.Stage(big, func(cb driver.CmdBuffer, staging driver.Buffer, off int64) {})
	if err := r.Flush(g, cb, release); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if r.gcap != 128 {
		t.Fatalf("capacity after staging 100 bytes = %d, want 128", r.gcap)
	}
	if len(released) != 1 {
		t.Fatalf("released = %d buffers, want 1 (the 16-byte buffer replaced by growth)", len(released))
	}

	small2 := make([]byte, 3)
	r.Stage(small2, func(cb driver.CmdBuffer, staging driver.Buffer, off int64) {})
	if err := r.Flush(g, cb, release); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if r.gcap != 4 {
		t.Fatalf("capacity after staging 3 bytes = %d, want 4 (shrink to fit)", r.gcap)
	}
	if len(released) != 2 {
		t.Fatalf("released = %d buffers, want 2 (grow once, shrink once)", len(released))
	}
}

func TestFlushWithNoUploadsIsNoop(t *testing.T) {
	g := openNull(t)
	cb, _ := g.NewCmdBuffer()
	cb.Begin()

	var r Ring
	if err := r.Flush(g, cb, nil); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if r.gpu != nil {
		t.Fatal("expected no GPU buffer allocated when nothing was staged")
	}
}

func TestPendingTracksStagedBytes(t *testing.T) {
	var r Ring
	if r.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", r.Pending())
	}
	r.Stage([]byte("abc"), func(driver.CmdBuffer, driver.Buffer, int64) {})
	if r.Pending() != 3 {
		t.Fatalf("Pending = %d, want 3", r.Pending())
	}
}
