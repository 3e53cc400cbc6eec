package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/stratlab/strata/pkg/diagram"
	"github.com/stratlab/strata/pkg/errors"
)

// ReadState decodes a diagram snapshot from r.
//
// The input must be a JSON object as produced by [WriteState]: the layout
// options, the per-group states with their panels, the classification
// record and the group bars. ReadState performs no validation against any
// table; [diagram.Restore] runs those checks when the snapshot is rebuilt
// into a live diagram.
//
// ReadState does not close r.
func ReadState(r io.Reader) (diagram.State, error) {
	var st diagram.State
	if err := json.NewDecoder(r).Decode(&st); err != nil {
		return diagram.State{}, errors.Wrap(errors.ErrCodeInvalidState, err, "decode state")
	}
	return st, nil
}

// ImportState reads a JSON snapshot file at path.
//
// ImportState opens the file, decodes it using [ReadState] and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportState(path string) (diagram.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return diagram.State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadState(f)
}
