// Package stamper completes records before they are rendered. Stamp renders
// the input template into the "input" field, adds the "hash" field when the
// output template asks for it, then applies the output template's quoting
// markers and default literals to every field.
package stamper
