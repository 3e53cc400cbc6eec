// Package io provides JSON import and export for diagram snapshots.
//
// # Overview
//
// This package serializes [diagram.State] values to and from an indented
// JSON format. A snapshot carries the complete drawing state of a laid-out
// diagram, which makes the format useful for:
//
//   - Handing a finished layout to an external renderer in one document
//   - Persisting a session so visibility, order and geometry survive restarts
//   - Round-trip processing: export, transform, re-import, rebuild
//
// # JSON Format
//
// The top-level object mirrors the State struct:
//
//	{
//	  "options": { "rect": {...}, "frame": {...}, "percentages": ["Trees"] },
//	  "index_name": "depth",
//	  "inverted": true,
//	  "groups": [
//	    {
//	      "name": "Trees",
//	      "kind": "percentage",
//	      "envelope": {"x0": 0.125, "y0": 0.11, "w": 0.4, "h": 0.539},
//	      "order": ["Pinus", "Betula"],
//	      "hidden": ["Betula"],
//	      "panels": [ ... ]
//	    }
//	  ],
//	  "subgroups": {"Pinus": "Trees", "Betula": "Trees"},
//	  "bars": [ ... ]
//	}
//
// The options block records the validated layout options, so a snapshot is
// self-contained: rebuilding it needs only the original table. The
// subgroups map records the raw classification key of every input column,
// which is how [diagram.Restore] reconstructs the classification function.
//
// # Import
//
// Use [ImportState] to read a snapshot from a file path, or [ReadState] to
// read from any io.Reader:
//
//	st, err := io.ImportState("diagram.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d, err := diagram.Restore(tbl, st)
//
// Decoding failures return an invalid-state error wrapping the cause.
// Structural validation happens in [diagram.Restore], not here.
//
// # Export
//
// Use [ExportState] to write a snapshot to a file, or [WriteState] to write
// to any io.Writer:
//
//	err := io.ExportState(d.Snapshot(), "diagram.json")
//
// The export includes every panel with its rectangle, visibility, axis
// range and style directives, plus the group bars with their pixel-derived
// label and bracket quantities. This is the full set a renderer needs; no
// layout computation is required on the consuming side.
package io
