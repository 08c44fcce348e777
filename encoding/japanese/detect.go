package japanese

import (
	"bytes"
	"unicode/utf8"

	enc "github.com/exeal/alpha-sub007/encoding"
)

// Candidate identifies one auto-detection outcome.
type Candidate struct {
	MIB              int
	Name             string
	ConvertibleBytes int
}

// Detect scores every registered Japanese candidate encoding against buf
// and returns the best match. A buffer that contains ESC and is accepted
// whole by an ISO-2022-JP variant is reported as that variant. Otherwise a
// UTF-8 check is consulted first: a fully valid UTF-8 buffer wins outright
// over any Japanese-specific candidate. Among the remaining candidates the
// one converting the most bytes wins; on a tie the earlier one is kept.
func Detect(buf []byte) Candidate {
	iso := scoreISO2022JP(buf)
	if bytes.IndexByte(buf, 0x1B) >= 0 && iso.ConvertibleBytes == len(buf) {
		return iso
	}
	if utf8.Valid(buf) && len(buf) > 0 {
		return Candidate{MIB: 106, Name: "UTF-8", ConvertibleBytes: len(buf)}
	}

	best := scoreShiftJIS(buf, shiftJIS1997)
	best = bestOf(best, scoreShiftJIS(buf, shiftJIS2004))
	best = bestOf(best, scoreEUCJP(buf, eucJP1997))
	best = bestOf(best, scoreEUCJP(buf, eucJIS2004))
	best = bestOf(best, iso)
	return best
}

func bestOf(a, b Candidate) Candidate {
	if b.ConvertibleBytes > a.ConvertibleBytes {
		return b
	}
	return a
}

func scoreShiftJIS(buf []byte, variant shiftJISVariant) Candidate {
	e := &shiftJISEncoder{variant: variant}
	name := "Shift_JIS"
	mib := 17
	if variant == shiftJIS2004 {
		name, mib = "Shift_JIS-2004", 2024
	}
	scratch := make([]uint16, len(buf)+1)
	consumed := greedyConsume(func(prefix []byte) (enc.Result, int) {
		res, _, n := e.ToUnicode(scratch, prefix, enc.Strict, true)
		return res, n
	}, buf)
	return Candidate{MIB: mib, Name: name, ConvertibleBytes: consumed}
}

func scoreEUCJP(buf []byte, variant eucJPVariant) Candidate {
	e := &eucJPEncoder{variant: variant}
	name := "EUC-JP"
	mib := 18
	if variant == eucJIS2004 {
		name, mib = "EUC-JIS-2004", 2025
	}
	scratch := make([]uint16, len(buf)+1)
	consumed := greedyConsume(func(prefix []byte) (enc.Result, int) {
		res, _, n := e.ToUnicode(scratch, prefix, enc.Strict, true)
		return res, n
	}, buf)
	return Candidate{MIB: mib, Name: name, ConvertibleBytes: consumed}
}

// scoreISO2022JP picks the tightest ISO-2022-JP variant that accepts the
// entire prefix it can convert, falling back to whichever variant
// converted the most bytes if none accepts the whole buffer.
func scoreISO2022JP(buf []byte) Candidate {
	variants := []Variant{VariantJP, VariantJP1, VariantJP2, VariantJP2004}
	names := map[Variant]string{
		VariantJP: "ISO-2022-JP", VariantJP1: "ISO-2022-JP-1",
		VariantJP2: "ISO-2022-JP-2", VariantJP2004: "ISO-2022-JP-2004",
	}
	best := Candidate{Name: "ISO-2022-JP", MIB: 39}
	scratch := make([]uint16, len(buf)+1)
	for _, v := range variants {
		e := &iso2022JPEncoder{variant: v}
		consumed := greedyConsume(func(prefix []byte) (enc.Result, int) {
			res, _, n := e.ToUnicode(scratch, prefix, enc.Strict, true)
			return res, n
		}, buf)
		if consumed == len(buf) {
			return Candidate{MIB: 39, Name: names[v], ConvertibleBytes: consumed}
		}
		if consumed > best.ConvertibleBytes {
			best = Candidate{MIB: 39, Name: names[v], ConvertibleBytes: consumed}
		}
	}
	return best
}

// greedyConsume counts how many bytes of buf a decoder can consume before
// hitting an undecodable sequence.
func greedyConsume(decode func(prefix []byte) (enc.Result, int), buf []byte) int {
	res, n := decode(buf)
	if res == enc.Completed {
		return n
	}
	return n
}
