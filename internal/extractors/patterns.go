package extractors

import (
	"regexp"

	"github.com/antchfx/xpath"
)

// MaxPossibleCandidates is the ceiling above which a set of matches is
// treated as noise.
const MaxPossibleCandidates = 1000

var (
	completeURL = regexp.MustCompile(`\D([0-9]{4})[/_-]([0-9]{1,2})[/_-]([0-9]{1,2})(?:\D|$)`)
	partialURL  = regexp.MustCompile(`\D([0-9]{4})[/_-]([0-9]{2})(?:\D|$)`)

	jsonPublished = regexp.MustCompile(`(?i)"datePublished": ?"([0-9]{4}-[0-9]{1,2}-[0-9]{1,2})`)
	jsonModified  = regexp.MustCompile(`(?i)"dateModified": ?"([0-9]{4}-[0-9]{1,2}-[0-9]{1,2})`)

	timestampPattern = regexp.MustCompile(`([0-9]{4}-[0-9]{2}-[0-9]{2}|[0-9]{2}\.[0-9]{2}\.[0-9]{4}).[0-9]{2}:[0-9]{2}:[0-9]{2}`)

	// labelled dates: "Published on 2017/09/01", "updated: 1.9.17"
	labelledEN = regexp.MustCompile(`(?i)\b(?:date[^0-9"]{0,20}|updated|published|posted|last modified|on)[ :]*?([0-9]{1,4})[./-]([0-9]{1,2})[./-]([0-9]{2,4})\b`)
	// "Datum: 01.09.2017", "Veröffentlicht am 1.9.2017"
	labelledDE = regexp.MustCompile(`(?i)(?:Datum|Stand|Veröffentlicht am|Aktualisiert am|Zuletzt aktualisiert)\s*:?\s*([0-9]{1,2})\.([0-9]{1,2})\.([0-9]{2,4})\b`)
)

// Text pattern families, see miner.go.
var (
	copyrightPattern = regexp.MustCompile(`(?:©|&copy;|Copyright|\(c\))\D*(?:[12][0-9]{3}-)?([12][0-9]{3})\D`)
	yearPattern      = regexp.MustCompile(`^\D?(199[0-9]|20[0-9]{2})`)

	threePattern = regexp.MustCompile(`/([0-9]{4}/[0-9]{2}/[0-9]{2})[01/]`)
	threeCatch   = regexp.MustCompile(`([0-9]{4})/([0-9]{2})/([0-9]{2})`)

	threeLoosePattern = regexp.MustCompile(`\D([0-9]{4}[/.-][0-9]{2}[/.-][0-9]{2})\D`)
	threeLooseCatch   = regexp.MustCompile(`([0-9]{4})[/.-]([0-9]{2})[/.-]([0-9]{2})`)

	selectYMDPattern = regexp.MustCompile(`\D([0-3]?[0-9][/.-][01]?[0-9][/.-][0-9]{4})\D`)
	selectYMDYear    = regexp.MustCompile(`(19[0-9]{2}|20[0-9]{2})\D?$`)
	dmyComponents    = regexp.MustCompile(`^([0-3]?[0-9])[/.-]([01]?[0-9])[/.-]([0-9]{4})$`)

	dateStringsPattern = regexp.MustCompile(`(\D19[0-9]{2}[01][0-9][0-3][0-9]\D|\D20[0-9]{2}[01][0-9][0-3][0-9]\D)`)
	dateStringsCatch   = regexp.MustCompile(`([12][0-9]{3})([01][0-9])([0-3][0-9])`)

	slashesPattern  = regexp.MustCompile(`\D([0-3]?[0-9]/[01]?[0-9]/[0129][0-9]|[0-3][0-9]\.[01][0-9]\.[0129][0-9])\D`)
	slashesYear     = regexp.MustCompile(`([0-9]{2})$`)
	slashComponents = regexp.MustCompile(`^([0-3]?[0-9])[/.]([01]?[0-9])[/.]([0-9]{2})$`)

	yyyymmPattern = regexp.MustCompile(`\D([12][0-9]{3}[/.-][01][0-9])\D`)
	yyyymmCatch   = regexp.MustCompile(`([12][0-9]{3})[/.-]([01][0-9])`)

	mmyyyyPattern    = regexp.MustCompile(`\D([01]?[0-9][/.-][12][0-9]{3})\D`)
	mmyyyyYear       = regexp.MustCompile(`([12][0-9]{3})\D?$`)
	myComponents     = regexp.MustCompile(`^([01]?[0-9])[/.-]([12][0-9]{3})$`)
	textDateYear     = regexp.MustCompile(`([12][0-9]{3})$`)
	simplePattern    = regexp.MustCompile(`\D((?:19|20)[0-9]{2})\D`)
	namespaceURL     = regexp.MustCompile(`(?i)w3\.org/[0-9A-Za-z/.]*`)
	ymdPattern       = regexp.MustCompile(`([0-9]{4})-([0-9]{2})-([0-9]{2})`)
	ymdYear          = regexp.MustCompile(`^([0-9]{4})`)
)

// dateExpressions target elements whose id or class suggests a date, from
// most to least specific.
var dateExpressions = compileAll(
	`.//*[contains(translate(@id, "D", "d"), "date") or contains(translate(@id, "D", "d"), "datum") or contains(@id, "time") or contains(@class, "post-meta-time")]`,
	`.//*[contains(translate(@class, "D", "d"), "date") or contains(translate(@class, "D", "d"), "datum")]`,
	`.//*[contains(@class, "postmeta") or contains(@class, "post-meta") or contains(@class, "entry-meta") or contains(@class, "postMeta") or contains(@class, "post_meta") or contains(@class, "post__meta")]`,
	`.//*[@class="meta" or @class="meta-before" or @class="asset-meta" or contains(@id, "article-metadata") or contains(@class, "article-metadata") or contains(@class, "byline") or contains(@class, "subline")]`,
	`.//*[contains(@class, "published") or contains(@class, "posted") or contains(@class, "submitted") or contains(@class, "created-post")]`,
	`.//*[contains(@class, "post-timestamp") or contains(@class, "post-time")]`,
	`.//*[contains(@id, "lastmod") or contains(@itemprop, "date") or contains(@class, "time")]`,
	`.//footer`,
	`.//*[@class="post-footer" or @class="footer" or @id="footer"]`,
	`.//small`,
	`.//*[contains(@class, "author") or contains(@class, "autor") or contains(@class, "field-content") or contains(@class, "info") or contains(@class, "fa-clock-o") or contains(@class, "fa-calendar") or contains(@class, "fecha") or contains(@class, "parution") or contains(@class, "footer-info-lastmod")]`,
)

var (
	abbrExpr      = xpath.MustCompile(`.//abbr`)
	timeExpr      = xpath.MustCompile(`.//time`)
	canonicalExpr = xpath.MustCompile(`.//link[@rel="canonical"]`)
	titleExpr     = xpath.MustCompile(`.//title | .//h1`)
)

func compileAll(exprs ...string) []*xpath.Expr {
	compiled := make([]*xpath.Expr, len(exprs))
	for i, e := range exprs {
		compiled[i] = xpath.MustCompile(e)
	}
	return compiled
}

// Meta vocabularies, lower case.
var (
	publishedAttributes = setOf(
		"analyticsattributes.articledate", "article.created", "article_date_original",
		"article:post_date", "article.published", "article:published", "article:published_date",
		"article:published_time", "article:publicationdate", "bt:pubdate", "citation_date",
		"citation_publication_date", "content_create_date", "created", "cxenseparse:recs:publishtime",
		"date", "date_created", "date_published", "datecreated", "dateposted", "datepublished",
		"dc.date", "dc.created", "dc.date.created", "dc.date.issued", "dc.date.publication",
		"dcsext.articlefirstpublished", "dcterms.created", "dcterms.date", "dcterms.issued",
		"dc:created", "dc:date", "displaydate", "doc_date", "field-date", "gentime",
		"mediator_published_time", "og:article:published", "og:article:published_time",
		"og:datepublished", "og:pubdate", "og:publish_date", "og:published_time",
		"og:question:published_time", "og:regdate", "originalpublicationdate",
		"parsely-pub-date", "pdate", "ptime", "pubdate", "publishdate", "publish_date",
		"publish-date", "published-date", "publication_date", "rbpubdate", "release_date",
		"rnews:datepublished", "sailthru.date", "shareaholic:article_published_time",
		"timestamp", "twt-published-at", "video:release_date", "vr:published_time",
	)
	modifiedAttributes = setOf(
		"article:modified", "article:modified_date", "article:modified_time", "article:post_modified",
		"bt:moddate", "datemodified", "dc.modified", "dcterms.modified", "lastdate", "lastmod",
		"lastmodified", "last-modified", "modified", "modified_time", "modificationdate",
		"og:article:modified_time", "og:modified_time", "og:updated_time", "revision_date",
		"updated_time", "utime",
	)
	itempropPublished = setOf("datecreated", "datepublished", "pubyear")
	itempropModified  = setOf("datemodified", "dateupdate")
)

func setOf(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, item := range items {
		m[item] = struct{}{}
	}
	return m
}
