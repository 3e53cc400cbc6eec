package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/stratlab/strata/pkg/diagram"
	"github.com/stratlab/strata/pkg/errors"
)

// WriteState encodes a diagram snapshot as indented JSON and writes it to w.
// The output can be re-imported with [ReadState] and rebuilt into a live
// diagram with [diagram.Restore] for round-trip processing.
func WriteState(st diagram.State, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidState, err, "encode state")
	}
	return nil
}

// ExportState writes a diagram snapshot to a JSON file at path.
// This is a convenience wrapper around [WriteState] for file-based output.
func ExportState(st diagram.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteState(st, f)
}
