// Package digester selects an xxHash variant and output encoding by name and
// renders string digests as unsigned decimal, two's-complement signed
// decimal, fixed-width lowercase hex, or canonical UUID text.
//
// The set of algorithm names is closed: Parse resolves a name such as
// "xxh64", "32s", "xxh3_128x" or "uuid" into an Algorithm once at startup,
// and Algorithm.Digest is then called once per record.
package digester
