// Package io reads and writes view trees as JSON or TOML documents.
//
// # Format
//
// Every node is an object with a "kind" and an optional "group" and
// "label". Elements carry their payload in "data" and their internal
// dimensions in "dims"; maps carry key dimensions in "dims" and their
// entries in "entries"; composites carry a "tag" and their "branches":
//
//	{
//	  "kind": "composite",
//	  "tag": "aggregate",
//	  "branches": [
//	    {
//	      "kind": "map",
//	      "group": "Stack",
//	      "dims": [{"name": "time", "type": "int", "values": [0, 1], "unit": "s"}],
//	      "entries": [
//	        {"key": [0], "node": {"kind": "element", "group": "Curve", "data": [1, 2]}},
//	        {"key": [1], "node": {"kind": "element", "group": "Curve", "data": [3, 4]}}
//	      ]
//	    },
//	    {"kind": "element", "group": "Text", "data": "legend"}
//	  ]
//	}
//
// A dimension has a "name" and optionally a "type" (int, float, string,
// bool), a value set "values" or inclusive bounds "min"/"max", and a "unit".
//
// TOML documents use the same field names, with entries and branches as
// arrays of tables.
//
// # Decoding
//
// Key components and domain values are converted to the declared type of
// their dimension; integral numbers of undeclared dimensions become int and
// other numbers float64. Entries are stored through [view.Map.Assign], so a
// document that breaks a container invariant fails with that invariant's
// error code, wrapped with the path of the offending entry. Branch keys are
// recomputed from the branch identities.
//
// # Encoding
//
// [WriteJSON] and [WriteTOML] emit the same structure. Element payloads are
// encoded as-is with the standard encoders of each format.
package io
