package container

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseBadMagic(t *testing.T) {
	_, err := Parse([]byte("xxxxxx\x00\x00"))
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("want ErrBadMagic, got %v", err)
	}
}

func TestParseTruncatedEntry(t *testing.T) {
	img := Pack([][]byte{[]byte("hello")})
	_, err := Parse(img[:len(img)-20])
	if err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestPackParseRoundTripPayloads(t *testing.T) {
	sections := [][]byte{
		[]byte("first section"),
		{},
		bytes.Repeat([]byte{0x42}, 5000), // spans multiple sectors
		[]byte("last"),
	}
	img := Pack(sections)
	got, err := Parse(img)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != len(sections) {
		t.Fatalf("got %d entries, want %d", len(got), len(sections))
	}
	for i, want := range sections {
		// Pack pads each section to a 16-byte boundary with 0xFF; the
		// payload must still start with the original bytes.
		if !bytes.HasPrefix(got[i], want) {
			t.Errorf("entry %d: got %v, want prefix %v", i, got[i], want)
		}
		for _, b := range got[i][len(want):] {
			if b != 0xFF {
				t.Errorf("entry %d: padding byte = %#x, want 0xFF", i, b)
			}
		}
	}
}

func TestParsePackIdempotentOnOwnOutput(t *testing.T) {
	sections := [][]byte{[]byte("abc"), []byte("defgh")}
	img1 := Pack(sections)
	payloads1, err := Parse(img1)
	if err != nil {
		t.Fatal(err)
	}
	img2 := Pack(payloads1)
	payloads2, err := Parse(img2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(payloads1, payloads2); diff != "" {
		t.Errorf("payloads changed across a second pack/parse cycle (-first +second):\n%s", diff)
	}
}

func TestDecodeSceneNames(t *testing.T) {
	entry0 := append([]byte("SCENE01\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"),
		append([]byte("SCENE02"), make([]byte, 25)...)...)
	got := DecodeSceneNames(entry0)
	want := []string{"SCENE01", "SCENE02"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeSceneNames mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeStringTable(t *testing.T) {
	data := []byte("helloworld")
	// strings: "hello" (0:5), "" (5:5), "world" (5:10)
	offsets := []uint32{0, 5, 5, 10, 0xFFFFFFFF}
	var buf bytes.Buffer
	for _, o := range offsets {
		var b [4]byte
		putU32BE(b[:], o)
		buf.Write(b[:])
	}
	got, err := DecodeStringTable(buf.Bytes(), data)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"hello", "", "world"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeStringTable mismatch (-want +got):\n%s", diff)
	}
}

func putU32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
