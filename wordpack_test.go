package wordpack

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func readFixture(t testing.TB) []byte {
	data, err := os.ReadFile("testdata/opticks-excerpt.txt")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestRoundTripFixture(t *testing.T) {
	data := readFixture(t)
	for _, order := range []Order{ByFrequency, FirstSeen} {
		e := Encoder{Selector: RepeatSelector{Order: order}}
		encoded := e.Encode(nil, data)
		if !IsEncoded(encoded) {
			t.Fatalf("%v: encoded output doesn't start with the marker", order)
		}
		var d Decoder
		decoded, err := d.Decode(nil, encoded)
		if err != nil {
			t.Fatal(err)
		}
		if want := Normalize(string(data)); string(decoded) != want {
			t.Fatalf("%v: decoded output doesn't match", order)
		}
		if len(encoded) >= len(data) {
			t.Errorf("%v: encoded %d bytes into %d", order, len(data), len(encoded))
		}
	}
}

func TestCatAndDog(t *testing.T) {
	text := "the cat sat on the mat\nthe dog sat on the rug"
	encoded := Encode(text)

	want := "@the on sat@@0 cat @2 @1 @0 mat\n@0 dog @2 @1 @0 rug"
	if encoded != want {
		t.Fatalf("Encode:\n got %q\nwant %q", encoded, want)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != text {
		t.Fatalf("Decode: got %q, want %q", decoded, text)
	}
}

func TestCatAndDogFirstSeen(t *testing.T) {
	text := "the cat sat on the mat\nthe dog sat on the rug"
	e := Encoder{Selector: RepeatSelector{Order: FirstSeen}}
	encoded := e.EncodeString(text)

	want := "@the sat on@@0 cat @1 @2 @0 mat\n@0 dog @1 @2 @0 rug"
	if encoded != want {
		t.Fatalf("Encode:\n got %q\nwant %q", encoded, want)
	}
}

// fixedSelector returns the same words for every document.
type fixedSelector []string

func (s fixedSelector) Select(dst []string, _ *Frequencies) []string {
	return append(dst, s...)
}

func TestCustomSelector(t *testing.T) {
	text := "a b x@y 12 a b x@y 12  z"
	e := Encoder{Selector: fixedSelector{"x@y", "", "a b", "12", "b", "b"}}
	encoded := e.EncodeString(text)
	if want := "@b@a @0 x@y 12 a @0 x@y 12  z"; encoded != want {
		t.Fatalf("Encode:\n got %q\nwant %q", encoded, want)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != text {
		t.Fatalf("Decode: got %q, want %q", decoded, text)
	}

	e.Selector = fixedSelector{"x@y"}
	if got := e.EncodeString(text); got != "@@"+text {
		t.Fatalf("Encode with unstorable words = %q", got)
	}
}

func TestStorable(t *testing.T) {
	for word, want := range map[string]bool{
		"word": true,
		"٣":    true,
		"4x2":  true,
		"":     false,
		"42":   false,
		"a@b":  false,
		"@a":   false,
		"a b":  false,
	} {
		if got := Storable(word); got != want {
			t.Errorf("Storable(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestEmpty(t *testing.T) {
	if got := Encode(""); got != "@@" {
		t.Fatalf("Encode(\"\") = %q, want \"@@\"", got)
	}
	got, err := Decode("@@")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("Decode(\"@@\") = %q, want \"\"", got)
	}
}

func TestFraming(t *testing.T) {
	for _, doc := range []string{"", "no markers here", "@only one"} {
		_, err := Decode(doc)
		if !errors.Is(err, ErrFraming) {
			t.Errorf("Decode(%q) error = %v, want ErrFraming", doc, err)
		}
		var fe *FramingError
		if !errors.As(err, &fe) {
			t.Errorf("Decode(%q) error is not a *FramingError", doc)
		} else if fe.Markers != strings.Count(doc, "@") {
			t.Errorf("Decode(%q) reported %d markers", doc, fe.Markers)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	var misses []int
	d := Decoder{OnMiss: func(id int) { misses = append(misses, id) }}
	got, err := d.DecodeString("@a b@x @99 @1 @0 @99999999999999999999999")
	if err != nil {
		t.Fatal(err)
	}
	if want := "x  b a "; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if len(misses) != 2 || misses[0] != 99 || misses[1] != -1 {
		t.Fatalf("misses = %v, want [99 -1]", misses)
	}
}

func TestEscape(t *testing.T) {
	for _, tc := range []struct {
		text string
		body string
	}{
		{"@home", "@@home"},
		{"@", "@@"},
		{"@@", "@@@"},
		{"@12", "@@12"},
		{"mail me@home", "mail me@home"},
		{"@x @x @x", "@@x @@x @@x"},
	} {
		encoded := Encode(tc.text)
		if !strings.HasPrefix(encoded, "@") {
			t.Fatalf("Encode(%q) = %q", tc.text, encoded)
		}
		_, body, err := split([]byte(encoded))
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != tc.body {
			t.Errorf("Encode(%q) body = %q, want %q", tc.text, body, tc.body)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatal(err)
		}
		if decoded != tc.text {
			t.Errorf("Decode(Encode(%q)) = %q", tc.text, decoded)
		}
	}
}

func TestLegacyEscape(t *testing.T) {
	got, err := Decode("@@@x y")
	if err != nil {
		t.Fatal(err)
	}
	if got != "x y" {
		t.Fatalf("got %q, want %q", got, "x y")
	}
}

func TestWhitespace(t *testing.T) {
	for _, text := range []string{
		"a  b  a  b",
		" leading and trailing ",
		"tab\tseparated tab\tseparated",
		"\n\nblank lines\n\n\nblank lines",
		"x\n",
	} {
		decoded, err := Decode(Encode(text))
		if err != nil {
			t.Fatal(err)
		}
		if want := Normalize(text); decoded != want {
			t.Errorf("round trip of %q: got %q, want %q", text, decoded, want)
		}
	}
}

func TestCRLF(t *testing.T) {
	text := "one two\r\none two\r\n"
	decoded, err := Decode(Encode(text))
	if err != nil {
		t.Fatal(err)
	}
	if decoded != "one two\none two" {
		t.Fatalf("got %q", decoded)
	}
}

func TestAlreadyEncoded(t *testing.T) {
	for _, text := range []string{"", "plain text", "1 2 3 1 2 3", "@x @x"} {
		if !IsEncoded([]byte(Encode(text))) {
			t.Errorf("Encode(%q) is not recognized as encoded", text)
		}
	}
	if IsEncoded([]byte("plain")) || IsEncoded(nil) {
		t.Error("plain text recognized as encoded")
	}
}

func TestWriterReader(t *testing.T) {
	data := readFixture(t)
	b := new(bytes.Buffer)
	w := &Writer{Dest: b}
	w.Write(data[:100])
	w.Write(data[100:])
	if b.Len() != 0 {
		t.Fatal("Writer wrote before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if w.Written() != int64(b.Len()) {
		t.Fatalf("Written() = %d, buffer holds %d", w.Written(), b.Len())
	}
	want := Encode(string(data))
	if b.String() != want {
		t.Fatal("Writer output doesn't match Encode")
	}

	r := NewReader(bytes.NewReader(b.Bytes()))
	got := new(bytes.Buffer)
	if _, err := got.ReadFrom(r); err != nil {
		t.Fatal(err)
	}
	if got.String() != Normalize(string(data)) {
		t.Fatal("Reader output doesn't match")
	}

	r.Reset(strings.NewReader("no header"))
	if _, err := r.Read(make([]byte, 10)); !errors.Is(err, ErrFraming) {
		t.Fatalf("Read error = %v, want ErrFraming", err)
	}
}

func TestWriterNoDest(t *testing.T) {
	var w Writer
	w.Write([]byte("one one"))
	if err := w.Close(); !errors.Is(err, ErrNoDest) {
		t.Fatalf("Close error = %v, want ErrNoDest", err)
	}
	b := new(bytes.Buffer)
	w.Reset(b)
	w.Write([]byte("two two"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if b.String() != "@two@@0 @0" {
		t.Fatalf("got %q", b.String())
	}
}

func TestAnnotate(t *testing.T) {
	got, err := Annotate("@the on@@0 cat @1 @7 @@x")
	if err != nil {
		t.Fatal(err)
	}
	want := "dictionary: 2 words\n<0:the> cat <1:on> <7:?> @x"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if _, err := Annotate("plain"); !errors.Is(err, ErrFraming) {
		t.Fatalf("error = %v, want ErrFraming", err)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add("the cat sat on the mat\nthe dog sat on the rug")
	f.Add("")
	f.Add("@")
	f.Add("@12 @12 12 12")
	f.Add("a  b\t\tc a  b")
	f.Add("hello世界 hello世界")
	f.Add("null\x00byte null\x00byte")
	f.Add("x@y x@y @@ @@")

	f.Fuzz(func(t *testing.T, text string) {
		encoded := Encode(text)
		if !IsEncoded([]byte(encoded)) {
			t.Fatalf("Encode(%q) = %q doesn't start with the marker", text, encoded)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", text, err)
		}
		if want := Normalize(text); decoded != want {
			t.Fatalf("round trip of %q: got %q, want %q", text, decoded, want)
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := readFixture(b)
	b.SetBytes(int64(len(data)))
	var e Encoder
	out := e.Encode(nil, data)
	b.ReportMetric(float64(len(data))/float64(len(out)), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		out = e.Encode(out[:0], data)
	}
}

func BenchmarkDecode(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := readFixture(b)
	var e Encoder
	encoded := e.Encode(nil, data)
	b.SetBytes(int64(len(encoded)))
	var d Decoder
	var out []byte
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		out, _ = d.Decode(out[:0], encoded)
	}
}
