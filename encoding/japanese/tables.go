// Package japanese implements the ISO-2022-JP family, Shift_JIS family, and
// EUC-JP family codecs, plus stream auto-detection across them.
//
// The lookup tables below are a curated subset (ASCII, JIS X 0201 kana,
// the full hiragana/katakana rows of JIS X 0208, and a small
// ideograph/GB2312/KSC5601/Latin sample) rather than an exhaustive
// generated mapping table.
package japanese

// kuten packs a JIS row/cell pair (1..94 each) into a single int key:
// ku*100+ten, used as a map key for the small hand-built tables below.
func kuten(ku, ten int) int { return ku*100 + ten }

// jis0208ToUnicode and unicodeToJIS0208 hold the JIS X 0208 subset: the
// complete hiragana (ku=4) and katakana (ku=5) rows, generated from their
// well-known contiguous Unicode ranges, plus a small curated ideograph
// sample used by tests and the spec's worked examples.
var (
	jis0208ToUnicode = map[int]rune{}
	unicodeToJIS0208 = map[rune]int{}
)

func addJIS0208(ku, ten int, r rune) {
	k := kuten(ku, ten)
	jis0208ToUnicode[k] = r
	unicodeToJIS0208[r] = k
}

func init() {
	// Hiragana: JIS X 0208 row 4, ten 1.. maps contiguously onto U+3041..
	for ten, r := 1, rune(0x3041); r <= 0x3093; ten, r = ten+1, r+1 {
		addJIS0208(4, ten, r)
	}
	// Katakana: JIS X 0208 row 5, ten 1.. maps contiguously onto U+30A1..
	for ten, r := 1, rune(0x30A1); r <= 0x30F6; ten, r = ten+1, r+1 {
		addJIS0208(5, ten, r)
	}
	// A small curated ideograph sample (real JIS X 0208 assignments) so
	// conversions involving common kanji have somewhere to land.
	ideographs := []struct {
		ku, ten int
		r       rune
	}{
		{16, 1, '亜'}, {16, 2, '唖'}, {16, 14, '握'},
		{43, 60, '本'}, {24, 76, '語'}, {20, 33, '漢'},
		{27, 90, '字'}, {16, 76, '一'}, {35, 90, '丁'},
		{38, 92, '日'}, {27, 16, '三'}, {31, 45, '人'},
		// Also representable via JIS X 0208 under its pre-2004 meaning;
		// ISO-2022-JP-2004-Strict refuses this designation for it and
		// falls back to the JIS X 0213 plane-1 escape instead (see
		// prohibitedIdeographs below).
		{49, 1, prohibitedIdeograph},
	}
	for _, e := range ideographs {
		addJIS0208(e.ku, e.ten, e.r)
	}
}

// prohibitedIdeographs is the set of code points that ISO-2022-JP-2004
// considers "prohibited" from the JIS X 0208 escape in Strict mode: under
// the 2004 unification their JIS X 0208 ku/ten cell changed meaning, so a
// strict encoder must route them through the JIS X 0213 escape instead,
// while a compatibility-oriented encoder still emits the old ESC $ B form.
var prohibitedIdeographs = map[rune]bool{prohibitedIdeograph: true}

// halfwidthKatakanaFirst/Last bound the 0xA1..0xDF byte range used by
// Shift_JIS/EUC-JP halfwidth katakana; byte 0xA1 corresponds to
// halfwidthUnicodeBase, U+FF61 (halfwidth ideographic full stop).
const (
	halfwidthKatakanaFirst = 0xA1
	halfwidthKatakanaLast  = 0xDF
	halfwidthUnicodeBase   = 0xFF61
)

func halfwidthKatakanaToUnicode(b byte) rune {
	return rune(b) + (halfwidthUnicodeBase - halfwidthKatakanaFirst)
}

func unicodeToHalfwidthKatakana(r rune) (byte, bool) {
	if r < halfwidthUnicodeBase || r > halfwidthUnicodeBase+(halfwidthKatakanaLast-halfwidthKatakanaFirst) {
		return 0, false
	}
	return byte(r - (halfwidthUnicodeBase - halfwidthKatakanaFirst)), true
}

// JIS X 0201 Roman differs from ASCII at two positions: 0x5C is YEN SIGN
// instead of backslash, and 0x7E is OVERLINE instead of tilde.
func jisX0201RomanToUnicode(b byte) rune {
	switch b {
	case 0x5C:
		return 0x00A5
	case 0x7E:
		return 0x203E
	default:
		return rune(b)
	}
}

func unicodeToJISX0201Roman(r rune) (byte, bool) {
	switch r {
	case 0x00A5:
		return 0x5C, true
	case 0x203E:
		return 0x7E, true
	}
	if r < 0x80 && r != '\\' && r != '~' {
		return byte(r), true
	}
	return 0, false
}

// jis0212ToUnicode/unicodeToJIS0212 represent a small JIS X 0212 sample
// (supplementary kanji, variant '1'/'2' designation ESC $ ( D).
var (
	jis0212ToUnicode = map[int]rune{kuten(2, 1): '˘', kuten(2, 2): 'ˇ'}
	unicodeToJIS0212 = map[rune]int{'˘': kuten(2, 1), 'ˇ': kuten(2, 2)}
)

// jis0213Plane1/Plane2 samples (variant '4'/'s'/'c', 2004 revision).
// In the 2004 revision a handful of JIS X 0208 ideographs were reassigned
// ("prohibited ideographs"); we model exactly one such code point so the
// Strict/Compatible designation-choice logic in iso2022jp.go has a real
// case to exercise.
const prohibitedIdeograph = '纊' // U+7E8A, unified differently under X0213

var (
	jis0213Plane1ToUnicode = map[int]rune{kuten(1, 1): prohibitedIdeograph}
	unicodeToJIS0213Plane1 = map[rune]int{prohibitedIdeograph: kuten(1, 1)}
	jis0213Plane2ToUnicode = map[int]rune{kuten(1, 1): '俱'}
	unicodeToJIS0213Plane2 = map[rune]int{'俱': kuten(1, 1)}
)

// GB2312 and KSC5601 samples (variant '2' only).
var (
	gb2312ToUnicode = map[int]rune{kuten(1, 1): '啊', kuten(1, 2): '阿'}
	unicodeToGB2312 = map[rune]int{'啊': kuten(1, 1), '阿': kuten(1, 2)}
	ksc5601ToUnicode = map[int]rune{kuten(1, 1): '가', kuten(1, 2): '각'}
	unicodeToKSC5601 = map[rune]int{'가': kuten(1, 1), '각': kuten(1, 2)}
)

// ISO-8859-1 and ISO-8859-7 (G2 designations, variant '2' only). 8859-1's
// high half is the identity mapping onto U+0080..U+00FF; 8859-7 is given
// as a small curated Greek sample.
func iso88591ToUnicode(b byte) rune { return rune(b) }

func unicodeToISO88591(r rune) (byte, bool) {
	if r >= 0x80 && r <= 0xFF {
		return byte(r), true
	}
	return 0, false
}

var (
	iso88597ToUnicode = map[byte]rune{0xC1: 'Α', 0xE1: 'α', 0xE2: 'β'}
	unicodeToISO88597 = map[rune]byte{'Α': 0xC1, 'α': 0xE1, 'β': 0xE2}
)
