package rsync

import (
	"errors"
	"fmt"
	"strings"
)

// Spec is a Config in the string form users type: endpoints as
// "user@host:path" and options as catalog flags.
type Spec struct {
	Direction  string
	Local      string
	Remote     string
	Port       string
	Source     string
	SourcePort string
	Dest       string
	DestPort   string
	// Options nil means DefaultOptions.
	Options  []string
	Excludes []string
}

// Config validates s and converts it. Exclude patterns switch on the
// --exclude option so they are never silently dropped.
func (s Spec) Config() (Config, error) {
	dir, err := ParseDirection(s.Direction)
	if err != nil {
		return Config{}, err
	}

	options := s.Options
	if options == nil {
		options = DefaultOptions()
	}
	for _, opt := range options {
		if _, ok := LookupOption(opt); !ok {
			return Config{}, fmt.Errorf("unknown rsync option %q", opt)
		}
	}
	excludes := nonEmpty(append([]string(nil), s.Excludes...))
	if len(excludes) > 0 && !hasOption(options, FlagExclude) {
		options = append(append([]string(nil), options...), FlagExclude)
	}

	cfg := Config{Direction: dir, Options: options, Excludes: excludes}
	switch dir {
	case ServerToServer:
		if strings.TrimSpace(s.Source) == "" || strings.TrimSpace(s.Dest) == "" {
			return Config{}, errors.New("server-to-server needs both a source and a destination")
		}
		cfg.Source = ParseEndpoint(s.Source)
		cfg.Source.Port = s.SourcePort
		cfg.Dest = ParseEndpoint(s.Dest)
		cfg.Dest.Port = s.DestPort
	default:
		if strings.TrimSpace(s.Local) == "" || strings.TrimSpace(s.Remote) == "" {
			return Config{}, fmt.Errorf("%s needs both a local path and a remote", dir)
		}
		cfg.LocalPath = s.Local
		cfg.Remote = ParseEndpoint(s.Remote)
		cfg.Remote.Port = s.Port
	}
	return cfg, nil
}

func hasOption(options []string, flag string) bool {
	for _, opt := range options {
		if normalizeFlag(opt) == flag {
			return true
		}
	}
	return false
}
