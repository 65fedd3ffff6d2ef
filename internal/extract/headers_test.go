package extract

import (
	"reflect"
	"testing"
)

func TestCleanHeadersFooters(t *testing.T) {
	lines := []string{
		"ICC-01/14-01/18-2784-Red 12-03-2021 17/105 T",
		"No. ICC-01/14-01/18 17/105 12 March 2021",
		"17/105",
		"No. ICC-01/14-01/18",
		"45. The Chamber finds that the accused bears responsibility",
		"an ordinary continuation line",
	}
	got := CleanHeadersFooters(lines, DefaultPatternSet())
	want := []string{
		"45. The Chamber finds that the accused bears responsibility",
		"an ordinary continuation line",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanHeadersFooters = %v, want %v", got, want)
	}
}

func TestCleanHeadersFooters_EmptyInput(t *testing.T) {
	got := CleanHeadersFooters(nil, DefaultPatternSet())
	if len(got) != 0 {
		t.Errorf("expected no lines, got %v", got)
	}
}
