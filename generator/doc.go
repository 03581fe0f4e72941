// Package generator runs the xxformat pipeline: load records from the
// configured source, complete each one with its digest and defaults, render
// it through the output template, join the results with the spacing string,
// wrap them in the overall template and write the text to a file or stdout.
//
// Everything is rendered in memory before the output file is opened, so a
// template error never leaves a truncated file behind.
package generator
