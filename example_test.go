package htmldate_test

import (
	"fmt"

	"github.com/mrjoshuak/htmldate"
)

const examplePage = `<html><head>
<meta property="article:published_time" content="2017-07-02T10:00:00">
<meta property="article:modified_time" content="2017-09-01">
</head><body><article><p>Some news.</p></article></body></html>`

func ExampleFindDate() {
	date, ok := htmldate.FindDate(examplePage)
	fmt.Println(date, ok)
	// Output: 2017-09-01 true
}

func ExampleNew() {
	finder := htmldate.New(
		htmldate.WithOriginalDate(true),
		htmldate.WithOutputFormat("January 2, 2006"),
	)

	result, err := finder.FindFromHTML(examplePage, nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%s (%s)\n", result.Formatted, result.Source)
	// Output: July 2, 2017 (header)
}

func ExampleWithURL() {
	finder := htmldate.New(htmldate.WithURL("https://example.org/blog/2016/05/04/launch.html"))

	result, _ := finder.FindFromHTML(`<html><body><p>We launched!</p></body></html>`, nil)
	fmt.Println(result.Formatted, result.Precision)
	// Output: 2016-05-04 day
}
