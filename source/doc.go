// Package source turns the tool's inputs into records. A record maps field
// names to string values.
//
// Free strings and line files yield one record per string under the
// "input" field. CSV files yield one record per row keyed by the normalized
// header; JSON files hold an array of flat objects. Load picks the reader
// from the file extension.
package source
