package output

import "github.com/mattn/go-isatty"

// ResolveColorMode combines the --color flag with terminal detection.
// "never" and "always" win; anything else defers to isTTY.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether stream, a reader or writer, is a terminal. Only
// values with a file descriptor qualify.
func IsTTY(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
