package container

import "testing"

func FuzzParse(f *testing.F) {
	f.Add(Pack([][]byte{[]byte("seed"), []byte("data")}))
	f.Add([]byte("mrgd00"))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Parse must never panic, regardless of input.
		_, _ = Parse(data)
	})
}
