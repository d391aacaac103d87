package fbset

import (
	"testing"

	"github.com/kestrelui/core/driver"
	_ "github.com/kestrelui/core/driver/null"
	"github.com/kestrelui/core/gpu/respool"
	"github.com/kestrelui/core/gpu/taskqueue"
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

func TestNewCreatesMainTargetWithValidTextureId(t *testing.T) {
	g := openNull(t)
	var q taskqueue.Queue
	pool, err := respool.New(g, &q)
	if err != nil {
		t.Fatalf("respool.New: %v", err)
	}
	set, err := New(g, pool, 640, 480)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	main := set.Main()
	if main.Width() != 640 || main.Height() != 480 {
		t.Fatalf("main extent = %dx%d, want 640x480", main.Width(), main.Height())
	}
	if main.TextureId() == respool.NoTexture {
		t.Fatal("expected main target's resolve view bound to a valid texture id")
	}
}

func TestCreateScratchAndLookup(t *testing.T) {
	g := openNull(t)
	var q taskqueue.Queue
	pool, err := respool.New(g, &q)
	if err != nil {
		t.Fatalf("respool.New: %v", err)
	}
	set, err := New(g, pool, 320, 240)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := set.Scratch("shadow"); ok {
		t.Fatal("expected no scratch target before creation")
	}
	_, err = set.CreateScratch("shadow", 1024, 1024)
	if err != nil {
		t.Fatalf("CreateScratch: %v", err)
	}
	got, ok := set.Scratch("shadow")
	if !ok {
		t.Fatal("expected scratch target to be found after creation")
	}
	if got.Width() != 1024 || got.Height() != 1024 {
		t.Fatalf("scratch extent = %dx%d, want 1024x1024", got.Width(), got.Height())
	}
}

func TestResizeMarksPreviousTargetStaleUntilReclaim(t *testing.T) {
	g := openNull(t)
	var q taskqueue.Queue
	pool, err := respool.New(g, &q)
	if err != nil {
		t.Fatalf("respool.New: %v", err)
	}
	set, err := New(g, pool, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := set.Resize(200, 200); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if len(set.stale) == 0 {
		t.Fatal("expected the previous main target to be queued as stale after Resize")
	}
	set.IdleReclaim()
	if len(set.stale) != 0 {
		t.Fatal("expected stale list cleared after IdleReclaim")
	}
	if set.Main().Width() != 200 {
		t.Fatalf("main width after resize = %d, want 200", set.Main().Width())
	}
}

func TestResizeToSameExtentIsNoop(t *testing.T) {
	g := openNull(t)
	var q taskqueue.Queue
	pool, err := respool.New(g, &q)
	if err != nil {
		t.Fatalf("respool.New: %v", err)
	}
	set, err := New(g, pool, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := set.Main()
	if err := set.Resize(100, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if set.Main() != before {
		t.Fatal("expected Resize to same extent to leave the main target untouched")
	}
	if len(set.stale) != 0 {
		t.Fatal("expected no stale entries from a same-extent Resize")
	}
}
