package clipboard

import (
	"errors"

	native "github.com/atotto/clipboard"
)

var errLibraryUnsupported = errors.New("native clipboard is not supported on this system")

// Library writes through the platform clipboard API.
type Library struct{}

func (Library) Name() string {
	return "native clipboard"
}

func (Library) Copy(data []byte) error {
	if native.Unsupported {
		return errLibraryUnsupported
	}
	return native.WriteAll(string(data))
}
