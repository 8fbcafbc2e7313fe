package structhash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestIntToBytes_MinimalSignedForm(t *testing.T) {
	cases := []struct {
		value    int64
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0xff}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x80}},
		{255, []byte{0x00, 0xff}},
		{-256, []byte{0xff, 0x00}},
		{65535, []byte{0x00, 0xff, 0xff}},
		{-1000000, []byte{0xf0, 0xbd, 0xc0}},
	}
	for _, tc := range cases {
		got := int64ToBytes(tc.value)
		if !bytes.Equal(got, tc.expected) {
			t.Errorf("int64ToBytes(%d) = %x, expected %x", tc.value, got, tc.expected)
		}
	}
}

func TestIntToBytes_BeyondInt64(t *testing.T) {
	big1 := new(big.Int).Lsh(big.NewInt(1), 64) // 2^64
	got := intToBytes(big1)
	expected := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, expected) {
		t.Errorf("intToBytes(2^64) = %x, expected %x", got, expected)
	}

	got = uint64ToBytes(math.MaxUint64)
	expected = []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	if !bytes.Equal(got, expected) {
		t.Errorf("uint64ToBytes(MaxUint64) = %x, expected %x", got, expected)
	}
}

func TestFloatToBytes_ExactRatio(t *testing.T) {
	cases := []struct {
		value    float64
		expected []byte
	}{
		{0.5, []byte{0x01, '/', 0x02}},
		{1.0, []byte{0x01, '/', 0x01}},
		{-2.5, []byte{0xfb, '/', 0x02}},
	}
	for _, tc := range cases {
		got := floatToBytes(tc.value)
		if !bytes.Equal(got, tc.expected) {
			t.Errorf("floatToBytes(%v) = %x, expected %x", tc.value, got, tc.expected)
		}
	}

	// 0.1 is the classic non-exact decimal: 3602879701896397 / 2^55
	got := floatToBytes(0.1)
	expected, _ := hex.DecodeString("0ccccccccccccd2f0080000000000000")
	if !bytes.Equal(got, expected) {
		t.Errorf("floatToBytes(0.1) = %x, expected %x", got, expected)
	}
}

func TestFloatToBytes_SpecialValues(t *testing.T) {
	if got := floatToBytes(math.NaN()); !bytes.Equal(got, []byte("nan")) {
		t.Errorf("NaN payload = %q, expected nan", got)
	}
	if got := floatToBytes(math.Inf(1)); !bytes.Equal(got, []byte("inf")) {
		t.Errorf("+Inf payload = %q, expected inf", got)
	}
	if got := floatToBytes(math.Inf(-1)); !bytes.Equal(got, []byte("-inf")) {
		t.Errorf("-Inf payload = %q, expected -inf", got)
	}
}

func TestFloatToBytes_SignedZeroEquivalence(t *testing.T) {
	pos := floatToBytes(0.0)
	neg := floatToBytes(math.Copysign(0, -1))
	if !bytes.Equal(pos, neg) {
		t.Errorf("0.0 and -0.0 must encode identically: %x vs %x", pos, neg)
	}
	if !bytes.Equal(pos, []byte{0x00, '/', 0x01}) {
		t.Errorf("zero ratio = %x, expected 00 2f 01", pos)
	}
}

func TestConvertToHashable_Primitives(t *testing.T) {
	reg := DefaultRegistry()
	cases := []struct {
		name    string
		value   any
		prefix  string
		payload []byte
	}{
		{"nil", nil, "NULL", []byte("NONE")},
		{"string", "a", "TXT", []byte("a")},
		{"bytes", []byte("ab"), "TXT", []byte("ab")},
		{"int", 1, "INT", []byte{0x01}},
		{"int32", int32(-1), "INT", []byte{0xff}},
		{"uint64", uint64(255), "INT", []byte{0x00, 0xff}},
		{"bool true", true, "INT", []byte{0x01}},
		{"bool false", false, "INT", []byte{0x00}},
		{"float", 0.5, "FLT", []byte{0x01, '/', 0x02}},
	}
	for _, tc := range cases {
		atom, err := convertToHashable(tc.value, true, reg)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if string(atom.Prefix) != tc.prefix {
			t.Errorf("%s: prefix = %q, expected %q", tc.name, atom.Prefix, tc.prefix)
		}
		if !bytes.Equal(atom.Payload, tc.payload) {
			t.Errorf("%s: payload = %x, expected %x", tc.name, atom.Payload, tc.payload)
		}
	}
}

func TestConvertToHashable_UntypedModeDropsPrefix(t *testing.T) {
	reg := DefaultRegistry()
	atom, err := convertToHashable(1, false, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(atom.Prefix) != 0 {
		t.Errorf("untyped prefix = %q, expected empty", atom.Prefix)
	}
	if !bytes.Equal(atom.Payload, []byte{0x01}) {
		t.Errorf("untyped payload = %x, expected 01", atom.Payload)
	}
}

func TestConvertToHashable_UnregisteredType(t *testing.T) {
	type opaque struct{ x int }
	_, err := convertToHashable(opaque{1}, true, DefaultRegistry())
	if err == nil {
		t.Fatal("expected error for unregistered struct type")
	}
	if !errors.Is(err, ErrNoHashMethod) {
		t.Errorf("expected ErrNoHashMethod, got %v", err)
	}
}
