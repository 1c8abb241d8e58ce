package rsync

import "strings"

// Option is an rsync flag the generator knows how to place.
type Option struct {
	Flag        string `json:"flag"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// Catalog flags with special placement.
const (
	FlagRemoteShell = "e"
	FlagDelete      = "--delete"
	FlagExclude     = "--exclude"
)

var catalog = []Option{
	{Flag: "a", Description: "Archive mode (recursive, preserves permissions, etc.)"},
	{Flag: "v", Description: "Verbose output", Default: true},
	{Flag: "z", Description: "Compress file data during transfer", Default: true},
	{Flag: "P", Description: "Show progress and keep partially transferred files", Default: true},
	{Flag: "n", Description: "Dry run (simulation)"},
	{Flag: "u", Description: "Skip files that are newer on the destination"},
	{Flag: "h", Description: "Output numbers in a human-readable format"},
	{Flag: FlagRemoteShell, Description: "Specify the remote shell", Default: true},
	{Flag: FlagDelete, Description: "Delete files on destination that don't exist on source"},
	{Flag: FlagExclude, Description: "Exclude files matching pattern"},
}

// Catalog returns the known options in display order.
func Catalog() []Option {
	return append([]Option(nil), catalog...)
}

// DefaultOptions returns the flags enabled by default.
func DefaultOptions() []string {
	var flags []string
	for _, opt := range catalog {
		if opt.Default {
			flags = append(flags, opt.Flag)
		}
	}
	return flags
}

// LookupOption finds a catalog option by flag. A leading "-" on short flags
// is tolerated.
func LookupOption(flag string) (Option, bool) {
	flag = normalizeFlag(flag)
	for _, opt := range catalog {
		if opt.Flag == flag {
			return opt, true
		}
	}
	return Option{}, false
}

// normalizeFlag strips a single dash from short flags ("-v" -> "v").
func normalizeFlag(flag string) string {
	flag = strings.TrimSpace(flag)
	if len(flag) == 2 && flag[0] == '-' && flag[1] != '-' {
		return flag[1:]
	}
	return flag
}

// isLong reports whether flag is a long option such as --delete.
func isLong(flag string) bool {
	return strings.HasPrefix(flag, "--")
}
