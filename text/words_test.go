package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitWords(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "hello world", []string{"hello", "world"}},
		{"ruby kept whole", "a <b|c> d", []string{"a", "<b|c>", "d"}},
		{"forced newline token", "a\nb", []string{"a", "\n", "b"}},
		{"ruby with space inside", "x<base two|anno two>y", []string{"x<base two|anno two>y"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitWords(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("SplitWords(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}
