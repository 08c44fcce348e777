package japanese

import (
	enc "github.com/exeal/alpha-sub007/encoding"
)

func init() {
	enc.RegisterInstaller(installJapaneseFactories)
}

// Note: auto-detection doesn't convert bytes itself -- it picks one of
// the encodings below. Rather than registering a fake Encoder for it, it
// is exposed directly as the Detect function, returning a
// (mib, canonical_name, convertible_byte_count) triple.

// installJapaneseFactories registers every convertible Japanese encoding,
// with their aliases and MIB enums.
func installJapaneseFactories(r *enc.Registry) {
	r.RegisterFactory(&enc.Encoding{
		Name: "Shift_JIS", Aliases: []string{"MS_Kanji", "csShiftJIS"},
		MIB: 17, Title: "Shift JIS", MaxBytesPerChar: 2, SubstitutionByte: '?',
		NewEncoder: NewShiftJISEncoder,
	})
	r.RegisterFactory(&enc.Encoding{
		Name: "Shift_JIS-2004", MIB: 2024, Title: "Shift JIS (2004)",
		MaxBytesPerChar: 2, SubstitutionByte: '?', NewEncoder: NewShiftJIS2004Encoder,
	})
	r.RegisterFactory(&enc.Encoding{
		Name: "EUC-JP", Aliases: []string{"Extended_UNIX_Code_Packed_Format_for_Japanese", "csEUCPkdFmtJapanese"},
		MIB: 18, Title: "EUC-JP", MaxBytesPerChar: 3, SubstitutionByte: '?',
		NewEncoder: NewEUCJPEncoder,
	})
	r.RegisterFactory(&enc.Encoding{
		Name: "EUC-JIS-2004", MIB: 2025, Title: "EUC-JIS-2004",
		MaxBytesPerChar: 3, SubstitutionByte: '?', NewEncoder: NewEUCJIS2004Encoder,
	})

	variants := []struct {
		name    string
		aliases []string
		tag     Variant
	}{
		{"ISO-2022-JP", []string{"csISO2022JP"}, VariantJP},
		{"ISO-2022-JP-1", nil, VariantJP1},
		{"ISO-2022-JP-2", []string{"csISO2022JP2"}, VariantJP2},
		{"ISO-2022-JP-2004", nil, VariantJP2004},
		{"ISO-2022-JP-2004-Strict", nil, VariantJP2004Strict},
		{"ISO-2022-JP-2004-Compatible", nil, VariantJP2004Compat},
	}
	for _, v := range variants {
		v := v
		r.RegisterFactory(&enc.Encoding{
			Name: v.name, Aliases: v.aliases, MIB: 39, Title: v.name,
			MaxBytesPerChar: 2, SubstitutionByte: '?',
			NewEncoder: func() enc.Encoder { return NewISO2022JPEncoder(v.tag) },
		})
	}
}
