package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/htmldate/internal/dates"
	"github.com/mrjoshuak/htmldate/internal/document"
)

func load(t *testing.T, page, url string) *document.Document {
	t.Helper()
	doc, err := document.Load(page, 0)
	require.NoError(t, err)
	doc.URL = url
	return doc
}

func TestExtractDateStages(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		url       string
		original  bool
		extensive bool
		want      string
		source    dates.Source
	}{
		{
			name:   "explicit url",
			html:   `<html><body><p>Nothing here.</p></body></html>`,
			url:    "https://example.org/2017/09/01/article.html",
			want:   "2017-09-01",
			source: dates.SourceURL,
		},
		{
			name:   "canonical link",
			html:   `<html><head><link rel="canonical" href="https://example.org/news/2016-03-05/story"></head><body></body></html>`,
			want:   "2016-03-05",
			source: dates.SourceURL,
		},
		{
			name:   "meta beats free text",
			html:   `<html><head><meta property="article:published_time" content="2020-01-01"></head><body><p>Copyright 2099</p></body></html>`,
			want:   "2020-01-01",
			source: dates.SourceHeader,
		},
		{
			name:     "published meta with original intent",
			html:     `<html><head><meta property="article:published_time" content="2017-07-02T10:00:00"><meta property="article:modified_time" content="2017-09-01"></head><body></body></html>`,
			original: true,
			want:     "2017-07-02",
			source:   dates.SourceHeader,
		},
		{
			name:   "modified meta with latest intent",
			html:   `<html><head><meta property="article:published_time" content="2017-07-02T10:00:00"><meta property="article:modified_time" content="2017-09-01"></head><body></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceHeader,
		},
		{
			name:   "itemprop",
			html:   `<html><head><meta itemprop="datePublished" content="2015-11-20"></head><body></body></html>`,
			want:   "2015-11-20",
			source: dates.SourceHeader,
		},
		{
			name:   "copyright year reserve",
			html:   `<html><head><meta itemprop="copyrightYear" content="2016"></head><body></body></html>`,
			want:   "2016-01-01",
			source: dates.SourceHeader,
		},
		{
			name:   "json-ld",
			html:   `<html><head><script type="application/ld+json">{"@type":"NewsArticle","datePublished":"2018-1-15","dateModified":"2018-02-03T08:00:00Z"}</script></head><body></body></html>`,
			want:   "2018-02-03",
			source: dates.SourceJSONLD,
		},
		{
			name:     "json-ld original",
			html:     `<html><head><script type="application/ld+json">{"@type":"NewsArticle","datePublished":"2018-1-15","dateModified":"2018-02-03T08:00:00Z"}</script></head><body></body></html>`,
			original: true,
			want:     "2018-01-15",
			source:   dates.SourceJSONLD,
		},
		{
			name:   "abbr epoch",
			html:   `<html><body><abbr data-utime="1504224000">Friday</abbr></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceAbbr,
		},
		{
			name:     "abbr published title",
			html:     `<html><body><abbr class="published" title="2014-06-30T12:00:00">June 30</abbr></body></html>`,
			original: true,
			want:     "2014-06-30",
			source:   dates.SourceAbbr,
		},
		{
			name:     "time entry-date shortcut",
			html:     `<html><body><time datetime="2017">x</time><time class="entry-date published" datetime="2017-09-01T10:00:00">new</time><time datetime="2016-01-01">old</time></body></html>`,
			original: true,
			want:     "2017-09-01",
			source:   dates.SourceTime,
		},
		{
			name:   "time updated shortcut",
			html:   `<html><body><time class="updated" datetime="2018-04-04">x</time></body></html>`,
			want:   "2018-04-04",
			source: dates.SourceTime,
		},
		{
			name:   "time reference",
			html:   `<html><body><time datetime="2016-01-01T08:00">a</time><time datetime="2017-01-01T08:00">b</time></body></html>`,
			want:   "2016-01-01",
			source: dates.SourceTime,
		},
		{
			name:   "class heuristics",
			html:   `<html><body><div class="post-date">Posted on 01.09.2017</div></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceElement,
		},
		{
			name:   "title attribute",
			html:   `<html><body><div class="byline" title="2015-02-03">by Jane</div></body></html>`,
			want:   "2015-02-03",
			source: dates.SourceElement,
		},
		{
			name:   "footer",
			html:   `<html><body><p>Article</p><footer><div class="date">2017-09-01</div></footer></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceDiscarded,
		},
		{
			name:   "timestamp",
			html:   `<html><body><p>Last update 2017-09-01 10:12:44</p></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceTimestamp,
		},
		{
			name:   "labelled german date",
			html:   `<html><body><p>Stand: 1.9.2017</p></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceIdiosyncrasy,
		},
		{
			name:   "labelled english date",
			html:   `<html><body><p>Published on 2017/09/01 by Jane</p></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceIdiosyncrasy,
		},
		{
			name:   "title",
			html:   `<html><head><title>Report 2017-09-01</title></head><body></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceTitle,
		},
		{
			name:   "partial url",
			html:   `<html><body><p>Nothing here.</p></body></html>`,
			url:    "https://example.org/2017/09/article.html",
			want:   "2017-09-01",
			source: dates.SourcePartialURL,
		},
		{
			name:   "image",
			html:   `<html><head><meta property="og:image" content="https://example.org/img/2017/09/01/pic.jpg"></head><body></body></html>`,
			want:   "2017-09-01",
			source: dates.SourceImage,
		},
		{
			name:      "free text segments",
			html:      `<html><body><p>Some text</p><p>Wednesday, March 1st, 2017</p></body></html>`,
			extensive: true,
			want:      "2017-03-01",
			source:    dates.SourceFreeText,
		},
		{
			name:      "copyright in extensive mode",
			html:      `<html><body><p>Terms of service. Copyright 2019 ACME.</p></body></html>`,
			extensive: true,
			want:      "2019-01-01",
			source:    dates.SourceCopyright,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ExtractDate(load(t, tt.html, tt.url), testContext(tt.original, tt.extensive))
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Format(dates.DefaultLayout))
			assert.Equal(t, tt.source, c.Source)
		})
	}
}

func TestExtractDateNoSignal(t *testing.T) {
	page := `<html><head><title>Terms of service</title></head><body><p>Terms of service. Copyright 2019 ACME.</p></body></html>`

	_, ok := ExtractDate(load(t, page, ""), testContext(false, false))
	assert.False(t, ok)

	_, ok = ExtractDate(nil, testContext(false, true))
	assert.False(t, ok)
}

func TestExtractDateRejectsOutOfBounds(t *testing.T) {
	page := `<html><head><meta property="article:published_time" content="2030-01-01"></head><body><div class="date">2019-05-05</div></body></html>`

	c, ok := ExtractDate(load(t, page, ""), testContext(false, false))
	require.True(t, ok)
	assert.Equal(t, "2019-05-05", c.Format(dates.DefaultLayout))
	assert.Equal(t, dates.SourceElement, c.Source)
}

func TestExtractDateDoesNotModifyTree(t *testing.T) {
	page := `<html><body><footer><span class="date">2017-09-01</span></footer><svg></svg></body></html>`
	doc := load(t, page, "")

	_, ok := ExtractDate(doc, testContext(false, true))
	require.True(t, ok)

	again, ok := ExtractDate(doc, testContext(false, true))
	require.True(t, ok)
	assert.Equal(t, dates.SourceDiscarded, again.Source)
}
