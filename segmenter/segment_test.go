package segmenter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSegment_ShortTextIsUntouched(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"hello"}, Segment("hello", DefaultLimit))
	req.Equal([]string{""}, Segment("", DefaultLimit))
	req.Equal([]string{strings.Repeat("a", DefaultLimit)}, Segment(strings.Repeat("a", DefaultLimit), DefaultLimit))
}

func TestSegment_HardSplitsLongLine(t *testing.T) {
	req := require.New(t)
	got := Segment(strings.Repeat("x", 3000), 1999)
	req.Len(got, 2)
	req.Len(got[0], 1999)
	req.Len(got[1], 1001)
}

func TestSegment_KeepsLinesTogether(t *testing.T) {
	text := "aaaa\nbbbb\ncccc\ndd"
	want := []string{"aaaa\nbbbb\n", "cccc\ndd"}
	if diff := cmp.Diff(want, Segment(text, 10)); diff != "" {
		t.Fatalf("unexpected segments (-want +got):\n%s", diff)
	}
}

func TestSegment_LongLineBetweenShortOnes(t *testing.T) {
	text := "ab\n" + strings.Repeat("z", 12) + "\ncd"
	want := []string{"ab\n", "zzzzz", "zzzzz", "zz\ncd"}
	if diff := cmp.Diff(want, Segment(text, 5)); diff != "" {
		t.Fatalf("unexpected segments (-want +got):\n%s", diff)
	}
}

func TestSegment_CountsCharactersNotBytes(t *testing.T) {
	req := require.New(t)
	got := Segment(strings.Repeat("é", 7), 3)
	req.Equal([]string{"ééé", "ééé", "é"}, got)
}

func TestSegment_KeepsInvalidBytesOnHardSplit(t *testing.T) {
	req := require.New(t)
	text := "aaaaa\xffbbbbb"
	got := Segment(text, 4)
	req.Equal([]string{"aaaa", "a\xffbb", "bbb"}, got)
	req.Equal(text, strings.Join(got, ""))
}

func TestSegment_RoundTripProperty(t *testing.T) {
	req := require.New(t)
	inputs := []string{
		"",
		"one line",
		strings.Repeat("line\n", 900),
		strings.Repeat("x", 5000),
		"\n\n\n\n",
		strings.Repeat("short\n", 10) + strings.Repeat("L", 4100) + "\ntail\n",
		strings.Repeat("ü🙂\n", 333),
	}
	limits := []int{1, 2, 3, 7, 100, 1999}

	for _, text := range inputs {
		for _, limit := range limits {
			segments := Segment(text, limit)
			req.Equal(text, strings.Join(segments, ""), "limit %d", limit)
			for _, s := range segments {
				req.LessOrEqual(utf8.RuneCountInString(s), limit, "limit %d", limit)
			}
		}
	}
}

func TestSegment_NonPositiveLimit(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, Segment("ab", 0))
}
