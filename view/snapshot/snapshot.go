// Package snapshot encodes a ViewTree.Snapshot as CBOR, for golden-file
// tests that assert the tree's post-Tick shape without depending on
// the core's internal layout.
package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/kestrelui/core/view"
)

// node mirrors view.Node with exported fields in a fixed order, so
// re-encoding a decoded snapshot round-trips byte for byte.
type node struct {
	ID     view.ViewId `cbor:"id"`
	Parent int         `cbor:"parent"`
	Depth  int         `cbor:"depth"`
	ZIndex int         `cbor:"z"`
	Layer  int         `cbor:"layer"`
	Hidden bool        `cbor:"hidden"`
	Center view.Vec2   `cbor:"center"`
	Extent view.Vec2   `cbor:"extent"`
}

// Encode serializes a tree snapshot to CBOR.
func Encode(nodes []view.Node) ([]byte, error) {
	out := make([]node, len(nodes))
	for i, n := range nodes {
		out[i] = node{
			ID:     n.ID,
			Parent: n.Parent,
			Depth:  n.Depth,
			ZIndex: n.ZIndex,
			Layer:  n.Layer,
			Hidden: n.Hidden,
			Center: n.Center,
			Extent: n.Extent,
		}
	}
	b, err := cbor.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("snapshot: cbor marshal: %w", err)
	}
	return b, nil
}

// Decode deserializes a CBOR buffer produced by Encode.
func Decode(b []byte) ([]view.Node, error) {
	var in []node
	if err := cbor.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("snapshot: cbor unmarshal: %w", err)
	}
	out := make([]view.Node, len(in))
	for i, n := range in {
		out[i] = view.Node{
			ID:     n.ID,
			Parent: n.Parent,
			Depth:  n.Depth,
			ZIndex: n.ZIndex,
			Layer:  n.Layer,
			Hidden: n.Hidden,
			Center: n.Center,
			Extent: n.Extent,
		}
	}
	return out, nil
}
