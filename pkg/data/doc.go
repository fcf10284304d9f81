// Package data holds the tabular records charts are built from.
//
// A record is a [Datum], a map from field name to value. Values are whatever
// the source produced: float64 for numbers read from CSV, JSON or YAML,
// strings, booleans, time.Time, or nil for missing cells.
//
// # Loading
//
// [Load] reads a file by extension (.csv, .json, .yaml/.yml); [Decode]
// reads from any io.Reader given a [Format]:
//
//	rows, err := data.Load("sales.csv")
//	if err != nil {
//	    return err
//	}
//
// CSV cells that parse as numbers become float64; empty cells become nil.
//
// # Helpers
//
// [Values] returns the unique values of a field in first-appearance order
// (the domain of a category scale), [Extent] the numeric min/max (the
// domain of a continuous scale), and [GroupBy] splits rows by the values
// of one or more fields.
package data
