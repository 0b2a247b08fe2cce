/*
Package htmldate finds the publication or last modification date of a web page.

It looks at the places where pages usually state their dates, from the most to
the least reliable: the URL, meta elements in the head, JSON-LD, abbr and time
elements, elements whose class or id suggests a date, the title and the image
sources. When none of them yields a plausible date, an extensive search mines
the page text with an ordered list of date patterns and picks the most
frequent plausible candidate.

Basic Usage:

    import "github.com/mrjoshuak/htmldate"

    // Latest (modification) date, ISO format
    date, ok := htmldate.FindDate(htmlString)

    // Publication date with a custom layout and date window
    finder := htmldate.New(
        htmldate.WithOriginalDate(true),
        htmldate.WithOutputFormat("02.01.2006"),
        htmldate.WithMinDateString("2000-01-01"),
    )
    result, err := finder.FindFromHTML(htmlString, nil)
    if err != nil {
        // invalid configuration
    }
    if result.Found {
        fmt.Println(result.Formatted, result.Source)
    }

Every returned date lies inside the configured window, 1995-01-01 to now by
default, and can be represented in the requested layout. Documents without a
usable date are not errors: the result simply has Found set to false.

Parsed fragments are memoized in a bounded cache shared by all finders. The
cache never changes a result; use WithoutCache or WithCacheSize to opt out or
isolate it, and ResetCaches to clear it.
*/
package htmldate
