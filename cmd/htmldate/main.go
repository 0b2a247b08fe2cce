// Command htmldate prints the publication or modification date of a web page.
package main

import (
	"fmt"
	"os"

	"github.com/mrjoshuak/htmldate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
