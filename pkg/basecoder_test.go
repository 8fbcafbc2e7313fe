package structhash

import (
	"errors"
	"math/big"
	"testing"
)

func TestConvertHexBase_CanonicalHexIdentity(t *testing.T) {
	alphabet, err := rectifyBase(BaseHex, nil)
	if err != nil {
		t.Fatalf("rectify hex failed: %v", err)
	}
	got, err := ConvertHexBase("deadbeef", alphabet)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if got != "deadbeef" {
		t.Errorf("hex identity path returned %q", got)
	}
}

func TestConvertHexBase_EquivalentAlphabetIsNotIdentity(t *testing.T) {
	// A caller-supplied list with the same 16 symbols must go through the
	// generic conversion, by identity rather than content.
	custom := []rune("0123456789abcdef")
	got, err := ConvertHexBase("00ff", custom)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	// generic path drops the leading zeros: 0x00ff = 255 = "ff"
	if got != "ff" {
		t.Errorf("generic path with hex symbols returned %q, expected ff", got)
	}
}

func TestConvertHexBase_KnownValues(t *testing.T) {
	abc, _ := rectifyBase(BaseAbc, nil)
	alnum, _ := rectifyBase(BaseAlphanum, nil)
	dec, _ := rectifyBase(BaseDec, nil)

	cases := []struct {
		hex      string
		alphabet []rune
		expected string
	}{
		{"ff", abc, "jv"},
		{"ff", alnum, "73"},
		{"ff", dec, "255"},
		{"deadbeef", abc, "mclinnz"},
		{"deadbeef", alnum, "1ps9wxb"},
		{"deadbeef", dec, "3735928559"},
	}
	for _, tc := range cases {
		got, err := ConvertHexBase(tc.hex, tc.alphabet)
		if err != nil {
			t.Errorf("convert %q failed: %v", tc.hex, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("convert(%q, base%d) = %q, expected %q", tc.hex, len(tc.alphabet), got, tc.expected)
		}
	}
}

func TestConvertHexBase_ZeroLiteral(t *testing.T) {
	// Zero maps to the literal "0" regardless of alphabet, NOT alphabet[0].
	abc, _ := rectifyBase(BaseAbc, nil)
	got, err := ConvertHexBase("00", abc)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if got != "0" {
		t.Errorf("zero converted to %q, expected literal \"0\"", got)
	}
}

func TestConvertHexBase_NegativePreservesSign(t *testing.T) {
	abc, _ := rectifyBase(BaseAbc, nil)
	got, err := ConvertHexBase("-ff", abc)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if got != "-jv" {
		t.Errorf("negative converted to %q, expected -jv", got)
	}
}

func TestConvertHexBase_ValueRoundTrip(t *testing.T) {
	// Re-basing preserves the integer value: decode the base-26 string back
	// into an integer and compare with the hex value.
	abc, _ := rectifyBase(BaseAbc, nil)
	hexStr := "a1ff772180230689"
	based, err := ConvertHexBase(hexStr, abc)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	fromHex, _ := new(big.Int).SetString(hexStr, 16)
	fromABC := big.NewInt(0)
	twentySix := big.NewInt(26)
	for _, r := range based {
		fromABC.Mul(fromABC, twentySix)
		fromABC.Add(fromABC, big.NewInt(int64(r-'a')))
	}
	if fromHex.Cmp(fromABC) != 0 {
		t.Errorf("value changed under re-basing: %v vs %v", fromHex, fromABC)
	}
}

func TestRectifyBase_Shorthands(t *testing.T) {
	cases := []struct {
		base string
		size int
	}{
		{"", 16},
		{BaseHex, 16},
		{BaseAbc, 26},
		{BaseAlphanum, 36},
		{BaseDec, 10},
	}
	for _, tc := range cases {
		alphabet, err := rectifyBase(tc.base, nil)
		if err != nil {
			t.Errorf("rectify(%q) failed: %v", tc.base, err)
			continue
		}
		if len(alphabet) != tc.size {
			t.Errorf("rectify(%q) size = %d, expected %d", tc.base, len(alphabet), tc.size)
		}
	}
}

func TestRectifyBase_Invalid(t *testing.T) {
	if _, err := rectifyBase("base64", nil); !errors.Is(err, ErrBadAlphabet) {
		t.Errorf("expected ErrBadAlphabet for unknown shorthand, got %v", err)
	}
	if _, err := rectifyBase("", []rune{'x'}); !errors.Is(err, ErrBadAlphabet) {
		t.Errorf("expected ErrBadAlphabet for single-symbol alphabet, got %v", err)
	}
	if _, err := rectifyBase("", []rune{'x', 'x'}); !errors.Is(err, ErrBadAlphabet) {
		t.Errorf("expected ErrBadAlphabet for duplicate symbols, got %v", err)
	}
}
