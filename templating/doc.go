// Package templating implements the single-brace placeholder language used
// by every xxformat template. Placeholders take the forms {name},
// {name=default}, {#name} and {#name=default}.
//
// Parse extracts the optional default literals and quoting markers into a
// Registry and rewrites the template down to bare {name} placeholders.
// Format substitutes a value map into such a template with
// valyala/fasttemplate and fails with ErrUnknownPlaceholder when a
// placeholder has no value.
package templating
