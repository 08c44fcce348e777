package japanese

import (
	"testing"

	enc "github.com/exeal/alpha-sub007/encoding"
)

func utf16Of(s string) []uint16 {
	var out []uint16
	for _, r := range s {
		buf := make([]uint16, 2)
		n, _ := enc.EncodeUTF16(buf, r)
		out = append(out, buf[:n]...)
	}
	return out
}

func TestShiftJISEncodeWorkedExample(t *testing.T) {
	// U+3042 U+FF71 ("あｱ") -> 82 A0 B1
	e := NewShiftJISEncoder()
	in := utf16Of("あｱ")
	out := make([]byte, 16)
	res, n, consumed := e.FromUnicode(out, in, enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("result = %v", res)
	}
	if consumed != len(in) {
		t.Fatalf("consumed = %d, want %d", consumed, len(in))
	}
	want := []byte{0x82, 0xA0, 0xB1}
	if n != len(want) || string(out[:n]) != string(want) {
		t.Fatalf("got % X, want % X", out[:n], want)
	}
}

func TestEUCJPEncodeWorkedExample(t *testing.T) {
	// U+3042 U+FF71 -> A4 A2 8E B1
	e := NewEUCJPEncoder()
	in := utf16Of("あｱ")
	out := make([]byte, 16)
	res, n, _ := e.FromUnicode(out, in, enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("result = %v", res)
	}
	want := []byte{0xA4, 0xA2, 0x8E, 0xB1}
	if n != len(want) || string(out[:n]) != string(want) {
		t.Fatalf("got % X, want % X", out[:n], want)
	}
}

func TestShiftJISRoundTrip(t *testing.T) {
	original := "あAｱ本語"
	enc1 := NewShiftJISEncoder()
	in := utf16Of(original)
	bytes := make([]byte, 64)
	res, nb, _ := enc1.FromUnicode(bytes, in, enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("encode result = %v", res)
	}

	dec := NewShiftJISEncoder()
	units := make([]uint16, 64)
	res, nu, nc := dec.ToUnicode(units, bytes[:nb], enc.Strict, true)
	if res != enc.Completed || nc != nb {
		t.Fatalf("decode result=%v consumed=%d want=%d", res, nc, nb)
	}
	gotRunes := decodeUTF16Units(units[:nu])
	if gotRunes != original {
		t.Fatalf("round trip got %q, want %q", gotRunes, original)
	}
}

func decodeUTF16Units(units []uint16) string {
	var rs []rune
	for i := 0; i < len(units); {
		r, n, ok := enc.DecodeUTF16(units[i:])
		if !ok {
			break
		}
		rs = append(rs, r)
		i += n
	}
	return string(rs)
}

func TestISO2022JPWorkedExample(t *testing.T) {
	// 1B 24 42 24 22 1B 28 42 41 -> "あA", final state G0=ASCII
	d := &iso2022JPEncoder{variant: VariantJP}
	in := []byte{0x1B, 0x24, 0x42, 0x24, 0x22, 0x1B, 0x28, 0x42, 0x41}
	out := make([]uint16, 16)
	res, n, consumed := d.ToUnicode(out, in, enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("result = %v", res)
	}
	if consumed != len(in) {
		t.Fatalf("consumed = %d want %d", consumed, len(in))
	}
	if got := decodeUTF16Units(out[:n]); got != "あA" {
		t.Fatalf("got %q want %q", got, "あA")
	}
	if d.state.G0 != enc.ASCII {
		t.Fatalf("final G0 = %v, want ASCII", d.state.G0)
	}
}

func TestISO2022JPDesignationResetOnLineBreak(t *testing.T) {
	d := &iso2022JPEncoder{variant: VariantJP}
	in := []byte{0x1B, 0x24, 0x42, 0x24, 0x22, 0x0A}
	out := make([]uint16, 16)
	res, _, _ := d.ToUnicode(out, in, enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("result = %v", res)
	}
	if d.state.G0 != enc.ASCII || d.state.G2 != enc.Undesignated {
		t.Fatalf("state after line break = %+v", d.state)
	}
}

func TestISO2022JPRoundTripASCII(t *testing.T) {
	e := &iso2022JPEncoder{variant: VariantJP}
	in := utf16Of("hello, world")
	out := make([]byte, 64)
	res, n, _ := e.FromUnicode(out, in, enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("result = %v", res)
	}
	if string(out[:n]) != "hello, world" {
		t.Fatalf("ASCII should be identity, got %q", out[:n])
	}
}

func TestISO2022JP2004CompatibleUsesJISX0208ForRepresentableIdeograph(t *testing.T) {
	e := &iso2022JPEncoder{variant: VariantJP2004Compat}
	in := utf16Of(string(prohibitedIdeograph))
	out := make([]byte, 32)
	res, n, _ := e.FromUnicode(out, in, enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("result = %v", res)
	}
	if n < 3 || out[0] != 0x1B || out[1] != '$' || out[2] != 'B' {
		t.Fatalf("compatible mode should designate ESC $ B, got % X", out[:n])
	}
}

func TestISO2022JP2004StrictAvoidsJISX0208ForProhibitedIdeograph(t *testing.T) {
	e := &iso2022JPEncoder{variant: VariantJP2004Strict}
	in := utf16Of(string(prohibitedIdeograph))
	out := make([]byte, 32)
	res, n, _ := e.FromUnicode(out, in, enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("result = %v", res)
	}
	if n >= 3 && out[0] == 0x1B && out[1] == '$' && out[2] == 'B' {
		t.Fatalf("strict mode must not designate ESC $ B for a prohibited ideograph, got % X", out[:n])
	}
}

func TestBidakuonRoundTrip(t *testing.T) {
	// か + U+309A -> JIS 0x2477 (ku=4, ten=87).
	e := &iso2022JPEncoder{variant: VariantJP}
	in := []uint16{'か', 0x309A}
	out := make([]byte, 32)
	res, n, consumed := e.FromUnicode(out, in, enc.Strict, true)
	if res != enc.Completed || consumed != len(in) {
		t.Fatalf("encode result=%v consumed=%d", res, consumed)
	}
	// Expect ESC $ B designation followed by bytes 0x24 0x77, then ESC ( B.
	found := false
	for i := 0; i+1 < len(out[:n]); i++ {
		if out[i] == 0x24 && out[i+1] == 0x77 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ku=4,ten=87 bytes 24 77 in % X", out[:n])
	}

	d := &iso2022JPEncoder{variant: VariantJP}
	units := make([]uint16, 16)
	res, nu, _ := d.ToUnicode(units, out[:n], enc.Strict, true)
	if res != enc.Completed {
		t.Fatalf("decode result = %v", res)
	}
	if decodeUTF16Units(units[:nu]) != "か゚" {
		t.Fatalf("round trip got %q", decodeUTF16Units(units[:nu]))
	}
}

func TestToneBarLigatureVsZWNJ(t *testing.T) {
	e1 := &iso2022JPEncoder{variant: VariantJP}
	ligature := []uint16{uint16(toneRisingFirst), uint16(toneFallingFirst)}
	out1 := make([]byte, 32)
	_, n1, _ := e1.FromUnicode(out1, ligature, enc.Strict, true)

	e2 := &iso2022JPEncoder{variant: VariantJP}
	separated := []uint16{uint16(toneRisingFirst), uint16(enc.ZeroWidthNonJoiner), uint16(toneFallingFirst)}
	out2 := make([]byte, 32)
	_, n2, _ := e2.FromUnicode(out2, separated, enc.Strict, true)

	if string(out1[:n1]) == string(out2[:n2]) {
		t.Fatalf("ligature and ZWNJ-separated tone bars must encode differently")
	}
}

func TestDetectPrefersISO2022JPWhenExactlyValid(t *testing.T) {
	// An exact ISO-2022-JP prefix with no trailing junk should win over
	// looser-scoring Shift_JIS/EUC-JP candidates.
	buf := []byte{0x1B, 0x24, 0x42, 0x24, 0x22, 0x1B, 0x28, 0x42}
	c := Detect(buf)
	if c.Name != "ISO-2022-JP" {
		t.Fatalf("detected %q, want ISO-2022-JP", c.Name)
	}
	if c.ConvertibleBytes != len(buf) {
		t.Fatalf("convertible bytes = %d, want %d", c.ConvertibleBytes, len(buf))
	}
}

func TestDetectPrefersShiftJIS2004OverShiftJIS(t *testing.T) {
	e := &shiftJISEncoder{variant: shiftJIS2004}
	in := utf16Of(string('俱'))
	buf := make([]byte, 16)
	res, n, _ := e.FromUnicode(buf, in, enc.Strict, true)
	if res != enc.Completed {
		t.Skip("table sample cannot represent the probe character; arithmetic already covered elsewhere")
	}
	c := Detect(buf[:n])
	if c.Name != "Shift_JIS-2004" {
		t.Fatalf("detected %q, want Shift_JIS-2004", c.Name)
	}
}

func TestASCIIIdentityAcrossJapaneseFamily(t *testing.T) {
	ascii := make([]byte, 0x80)
	for i := range ascii {
		ascii[i] = byte(i)
	}
	encoders := []func() enc.Encoder{
		NewShiftJISEncoder, NewEUCJPEncoder,
		func() enc.Encoder { return NewISO2022JPEncoder(VariantJP) },
	}
	for _, newE := range encoders {
		e := newE()
		units := make([]uint16, 256)
		res, nu, nc := e.ToUnicode(units, ascii, enc.Strict, true)
		if res != enc.Completed || nc != len(ascii) {
			t.Fatalf("%T: decode result=%v consumed=%d", e, res, nc)
		}
		back := make([]byte, 256)
		e2 := newE()
		res, nb, _ := e2.FromUnicode(back, units[:nu], enc.Strict, true)
		if res != enc.Completed {
			t.Fatalf("%T: encode result=%v", e, res)
		}
		if string(back[:nb]) != string(ascii) {
			t.Fatalf("%T: ASCII is not identity: got % X", e, back[:nb])
		}
	}
}

func TestRegistryLookupByNameAndAlias(t *testing.T) {
	enc.Teardown()
	r := enc.Default()
	if _, ok := r.ForName("shift_jis"); !ok {
		t.Fatal("expected case-insensitive canonical lookup")
	}
	if _, ok := r.ForName("MS_Kanji"); !ok {
		t.Fatal("expected alias lookup")
	}
	if _, ok := r.ForMIB(18); !ok {
		t.Fatal("expected MIB lookup for EUC-JP")
	}
}
