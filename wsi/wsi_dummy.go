
package wsi

import (
	"errors"
)

var errMissing = errors.New("no wsi implementation")

// keymap is empty: the dummy backend has no key codes to map,
// so keyFrom returns KeyUnknown for every non-negative code.
var keymap []Key

func init() {
	initDummy()
}

func initDummy() {
	newWindow = newWindowDummy
	dispatch = dispatchDummy
	setAppName = setAppNameDummy
	platform = None
}

func newWindowDummy(int, int, string) (Window, error) {
	return nil, errMissing
}

func dispatchDummy()         {}
func setAppNameDummy(string) {}
