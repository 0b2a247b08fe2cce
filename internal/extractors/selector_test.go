package extractors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/htmldate/internal/dates"
)

func testContext(original, extensive bool) dates.SearchContext {
	sc := dates.NewSearchContext()
	sc.Original = original
	sc.Extensive = extensive
	sc.Bounds.Max = time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC)
	return sc
}

func TestSelectCandidate(t *testing.T) {
	tests := []struct {
		name     string
		freq     Frequencies
		original bool
		want     string
	}{
		{
			name: "rare newer date loses below half the count",
			freq: Frequencies{"2016-12-23": 4, "2017-08-11": 1},
			want: "2016-12-23",
		},
		{
			name: "equal counts resolve by order, latest",
			freq: Frequencies{"2016-12-23": 2, "2017-01-01": 2},
			want: "2017-01-01",
		},
		{
			name:     "equal counts resolve by order, earliest",
			freq:     Frequencies{"2016-12-23": 2, "2017-01-01": 2},
			original: true,
			want:     "2016-12-23",
		},
		{
			name: "more frequent older date wins",
			freq: Frequencies{"2016-12-23": 3, "2017-08-11": 2},
			want: "2016-12-23",
		},
		{
			name: "older date above half the count wins when it comes second",
			freq: Frequencies{"2017-08-11": 3, "2016-12-23": 2},
			want: "2016-12-23",
		},
		{
			name: "older date below half the count loses",
			freq: Frequencies{"2017-08-11": 4, "2016-12-23": 1},
			want: "2017-08-11",
		},
		{
			name: "same year keeps the first",
			freq: Frequencies{"2017-01-01": 1, "2017-05-05": 3},
			want: "2017-05-05",
		},
		{
			name: "implausible first falls back to the second",
			freq: Frequencies{"2030-01-01": 5, "2017-01-01": 1},
			want: "2017-01-01",
		},
		{
			name: "single candidate",
			freq: Frequencies{"2015-06-07": 1},
			want: "2015-06-07",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectCandidate(tt.freq, ymdPattern, ymdYear, testContext(tt.original, true))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestSelectCandidateNoResult(t *testing.T) {
	sc := testContext(false, true)

	assert.Nil(t, SelectCandidate(Frequencies{}, ymdPattern, ymdYear, sc))
	assert.Nil(t, SelectCandidate(Frequencies{"1980-01-01": 2, "1985-01-01": 1}, ymdPattern, ymdYear, sc))

	noisy := Frequencies{}
	for i := 0; i <= MaxPossibleCandidates; i++ {
		noisy[fmt.Sprintf("2017-%02d-%02d#%d", i%12+1, i%28+1, i)] = 1
	}
	assert.Nil(t, SelectCandidate(noisy, ymdPattern, ymdYear, sc))
}

func TestSelectCandidateChronologicalOrder(t *testing.T) {
	// '/' sorts after '-', so comparing raw strings would pick the 23rd
	freq := Frequencies{"2016/12/23": 2, "2016-12-24": 1}

	got := SelectCandidate(freq, threeLooseCatch, yearPattern, testContext(false, true))
	require.NotNil(t, got)
	assert.Equal(t, "2016-12-24", got[0])

	got = SelectCandidate(freq, threeLooseCatch, yearPattern, testContext(true, true))
	require.NotNil(t, got)
	assert.Equal(t, "2016/12/23", got[0])
}

func TestChronoKey(t *testing.T) {
	assert.Equal(t, "2016-12-23", chronoKey("2016/12/23", threeLooseCatch))
	assert.Equal(t, "2016-12-23", chronoKey("-20161223<", dateStringsCatch))
	assert.Equal(t, "2016-03", chronoKey("2016.03", yyyymmCatch))
	assert.Equal(t, "no match", chronoKey("no match", ymdPattern))
}
