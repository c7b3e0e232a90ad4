package packedbits

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteListLayouts(t *testing.T) {
	cases := []struct {
		name         string
		set          *BitSet
		shortListLen int
		want         string
	}{
		{"empty", New(), 0, "0()"},
		{"single", FromIndices([]int{0}), 0, "1(1)"},
		{"uniform on", NewFilled(5, true), 0, "5{1}"},
		{"uniform off", NewSize(3), 2, "3{0}"},
		{"compact", FromIndicesSize(4, []int{0, 3}), 0, "4(1 0 0 1)"},
		{"under threshold", FromIndicesSize(4, []int{1}), 4, "4(0 1 0 0)"},
		{"multiline", FromIndicesSize(4, []int{1}), 3, "\n4\n(\n0\n1\n0\n0\n)\n"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := tc.set.WriteList(&buf, tc.shortListLen); err != nil {
			t.Fatalf("%v: write failed: %v", tc.name, err)
		}
		if buf.String() != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.name, tc.want, buf.String())
		}
	}
}

func TestListRoundTrip(t *testing.T) {
	sets := []*BitSet{
		New(),
		NewSize(1),
		FromIndices([]int{0}),
		NewFilled(200, true),
		NewSize(64),
		FromIndicesSize(130, []int{0, 65, 129}),
		FromIndicesSize(20, []int{19}),
	}
	for _, set := range sets {
		for _, shortListLen := range []int{0, 1, 10, 1000} {
			var buf bytes.Buffer
			if err := set.WriteList(&buf, shortListLen); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			got, err := ReadList(&buf)
			if err != nil {
				t.Fatalf("read of %q failed: %v", set.String(), err)
			}
			if !got.Equal(set) {
				t.Fatalf("round trip mismatch for shortListLen %v: %v vs %v", shortListLen, got, set)
			}
			checkInvariant(t, got)
		}
	}
}

func TestEntryRoundTrip(t *testing.T) {
	small := FromIndicesSize(4, []int{0, 3})
	var buf bytes.Buffer
	if err := small.WriteEntry(&buf, "selected"); err != nil {
		t.Fatalf("write entry failed: %v", err)
	}
	if buf.String() != "selected List<bool> 4(1 0 0 1);\n" {
		t.Fatalf("unexpected entry %q", buf.String())
	}

	large := FromIndicesSize(12, []int{2, 11})
	if err := large.WriteEntry(&buf, "faces"); err != nil {
		t.Fatalf("write entry failed: %v", err)
	}
	if !strings.Contains(buf.String(), "faces List<bool>\n12\n(\n0\n") {
		t.Fatalf("large entry should be line broken, got %q", buf.String())
	}

	kw, got, err := ReadEntry(&buf)
	if err != nil || kw != "selected" || !got.Equal(small) {
		t.Fatalf("first entry mismatch: %v %v %v", kw, got, err)
	}
	kw, got, err = ReadEntry(&buf)
	if err != nil || kw != "faces" || !got.Equal(large) {
		t.Fatalf("second entry mismatch: %v %v %v", kw, got, err)
	}
}

func TestReadEntryWithoutType(t *testing.T) {
	kw, got, err := ReadEntry(strings.NewReader("cells 3{1} ;"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if kw != "cells" || got.Len() != 3 || !got.IsAll() {
		t.Fatalf("unexpected result %v %v", kw, got)
	}
}

func TestReadListAcceptsWords(t *testing.T) {
	got, err := ReadList(strings.NewReader("  5( true off yes  0\n on )"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Len() != 5 || !sameInts(got.Toc(), []int{0, 2, 4}) {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestReadListMalformed(t *testing.T) {
	inputs := []string{
		"",
		"x(1)",
		"-1()",
		"3(1 0)",
		"2(1 0 1)",
		"2(1 2)",
		"2[1 0]",
		"2{1",
		"4{maybe}",
		"3(1 0 1",
		"9223372036854775807{0}",
		"9223372036854775807(1 0)",
		"1000000000000000000{1}",
		"5000000000{1}",
		"1000000000000000000(1 0)",
	}
	for _, in := range inputs {
		_, err := ReadList(strings.NewReader(in))
		if err == nil {
			t.Fatalf("%q should fail to parse", in)
		}
		if !errors.Is(err, ErrMalformedList) {
			t.Fatalf("%q: expected ErrMalformedList, got %v", in, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected *ParseError, got %T", in, err)
		}
	}
}

func TestReadEntryBadType(t *testing.T) {
	_, _, err := ReadEntry(strings.NewReader("selected List<label> 2(1 0);"))
	if !errors.Is(err, ErrMalformedList) {
		t.Fatalf("expected ErrMalformedList, got %v", err)
	}
	_, _, err = ReadEntry(strings.NewReader("selected 2(1 0)"))
	if !errors.Is(err, ErrMalformedList) {
		t.Fatalf("missing ';' should fail, got %v", err)
	}
}

func TestTextMarshaling(t *testing.T) {
	set := FromIndicesSize(6, []int{1, 5})
	text, err := set.MarshalText()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(text) != "6(0 1 0 0 0 1)" || set.String() != string(text) {
		t.Fatalf("unexpected text %q", text)
	}
	var got BitSet
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !got.Equal(set) {
		t.Fatalf("round trip mismatch: %v", &got)
	}
	if err := got.UnmarshalText([]byte("2(1 0) junk")); !errors.Is(err, ErrMalformedList) {
		t.Fatalf("trailing input should fail, got %v", err)
	}
	if err := got.UnmarshalText([]byte("9223372036854775807{0}")); !errors.Is(err, ErrMalformedList) {
		t.Fatalf("overflowing size should fail, got %v", err)
	}
}

func TestReadListLargeSizes(t *testing.T) {
	got, err := ReadList(strings.NewReader("200(0 0 1" + strings.Repeat(" 0", 197) + ")"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Len() != 200 || !sameInts(got.Toc(), []int{2}) {
		t.Fatalf("unexpected result %v", got)
	}
	checkInvariant(t, got)

	got, err = ReadList(strings.NewReader("1000{1}"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Len() != 1000 || got.Count() != 1000 {
		t.Fatalf("unexpected uniform result %v", got.Len())
	}
}

func TestWriteEntryEmptyKeyword(t *testing.T) {
	if err := New().WriteEntry(&bytes.Buffer{}, ""); err == nil {
		t.Fatal("empty keyword should fail")
	}
}
