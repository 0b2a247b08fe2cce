package htmldate

import (
	"github.com/mrjoshuak/htmldate/types"
)

// Result is the outcome of one date search.
type Result = types.Result

// SearchOptions configures a date search.
type SearchOptions = types.SearchOptions

// Version of the library.
const Version = types.Version

// DefaultOptions returns the default search options.
func DefaultOptions() SearchOptions {
	return types.DefaultOptions()
}

// BuildInfo contains version and build information.
type BuildInfo = types.BuildInfo

// GetBuildInfo returns the current version information.
func GetBuildInfo() BuildInfo {
	return types.GetBuildInfo()
}
