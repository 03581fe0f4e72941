package stamper

import (
	"fmt"

	"github.com/byte4ever/xxformat/source"
	"github.com/byte4ever/xxformat/templating"
)

// HashField is the field the rendered digest is stored
// under.
const HashField = "hash"

// Digester renders the digest of a hash input.
type Digester interface {
	Digest(input string) (string, error)
}

// Stamper completes records for one output template.
type Stamper struct {
	inputTemplate string
	defaults      templating.Registry
	digester      Digester
	hashRequired  bool
}

// New returns a Stamper rendering inputTemplate as the hash
// input and applying output's registry. Hashing is enabled
// only when output references the hash field.
func New(
	inputTemplate string,
	output templating.Template,
	dg Digester,
) *Stamper {
	return &Stamper{
		inputTemplate: inputTemplate,
		defaults:      output.Defaults,
		digester:      dg,
		hashRequired:  output.References(HashField),
	}
}

// HashRequired reports whether Stamp computes digests.
func (st *Stamper) HashRequired() bool {
	return st.hashRequired
}

// Stamp returns a completed copy of rc. Non-empty values
// of quoted fields are wrapped in single quotes; empty
// values take the registered default literal when there is
// one. Fields with a default literal that rc lacks are
// added.
func (st *Stamper) Stamp(rc source.Record) (source.Record, error) {
	const errCtx = "stamping record"

	out := rc.Clone()

	input, err := templating.Format(st.inputTemplate, out)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: input template: %w", errCtx, err,
		)
	}

	out[source.InputField] = input

	if st.hashRequired {
		digest, err := st.digester.Digest(input)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		out[HashField] = digest
	}

	for name, val := range out {
		df, ok := st.defaults[name]
		if !ok {
			continue
		}

		switch {
		case val != "" && df.Quoted:
			out[name] = "'" + val + "'"
		case val == "" && df.HasValue:
			out[name] = df.Value
		}
	}

	for name, df := range st.defaults {
		if _, ok := out[name]; !ok && df.HasValue {
			out[name] = df.Value
		}
	}

	return out, nil
}
