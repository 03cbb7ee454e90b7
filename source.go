package texhash

// Source is a read-only view of texel memory handed to the checksum engines.
//
// Mem[Base] is the first byte of the region. Rows narrower than 4 bytes make
// the engines read up to 3 bytes before a row start; those bytes come from
// Mem when Base leaves room for them. Every byte outside Mem reads as zero,
// so no region geometry can fault.
//
// The zero Source (nil Mem) is the null source: composite checksums of it
// are 0.
type Source struct {
	Mem  []byte
	Base int
}

// Bytes returns a Source whose region starts at b[0].
func Bytes(b []byte) Source {
	return Source{Mem: b}
}

// At returns a Source whose region starts at mem[base]. Bytes before base
// stay visible to the narrow-row lookback.
func At(mem []byte, base int) Source {
	return Source{Mem: mem, Base: base}
}

// IsNil reports whether s is the null source.
func (s Source) IsNil() bool {
	return s.Mem == nil
}
