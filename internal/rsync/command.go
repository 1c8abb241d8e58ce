package rsync

import (
	"fmt"
	"strings"
)

// DefaultPort is the ssh port that needs no -e override.
const DefaultPort = "22"

// Direction selects which side of the transfer is remote.
type Direction string

const (
	LocalToRemote  Direction = "local-to-remote"
	RemoteToLocal  Direction = "remote-to-local"
	ServerToServer Direction = "server-to-server"
)

// ParseDirection accepts the canonical names plus push/pull shorthands.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(LocalToRemote), "push", "l2r":
		return LocalToRemote, nil
	case string(RemoteToLocal), "pull", "r2l":
		return RemoteToLocal, nil
	case string(ServerToServer), "s2s", "relay":
		return ServerToServer, nil
	default:
		return "", fmt.Errorf("unknown direction %q (local-to-remote|remote-to-local|server-to-server)", value)
	}
}

// Endpoint is one side of a remote transfer.
type Endpoint struct {
	User string `json:"user,omitempty" yaml:"user,omitempty"`
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	Port string `json:"port,omitempty" yaml:"port,omitempty"`
}

// String renders the endpoint as user@host:path. Without a host only the
// path is returned.
func (e Endpoint) String() string {
	if e.Host == "" {
		return e.Path
	}
	return e.login() + ":" + e.Path
}

// login returns user@host, or host when no user is set.
func (e Endpoint) login() string {
	if e.User == "" {
		return e.Host
	}
	return e.User + "@" + e.Host
}

// port returns the configured port or DefaultPort.
func (e Endpoint) port() string {
	if p := strings.TrimSpace(e.Port); p != "" {
		return p
	}
	return DefaultPort
}

// ParseEndpoint splits "user@host:path" into an Endpoint. A spec without a
// colon is treated as a bare path. The port is left empty.
func ParseEndpoint(spec string) Endpoint {
	login, path, ok := strings.Cut(spec, ":")
	if !ok {
		return Endpoint{Path: spec}
	}
	endpoint := Endpoint{Path: path}
	if user, host, hasUser := strings.Cut(login, "@"); hasUser {
		endpoint.User = user
		endpoint.Host = host
	} else {
		endpoint.Host = login
	}
	return endpoint
}

// Config is everything needed to assemble one rsync command line.
// LocalPath and Remote are used for the local/remote directions; Source and
// Dest only for ServerToServer.
type Config struct {
	Direction Direction `json:"direction"`
	LocalPath string    `json:"local_path,omitempty"`
	Remote    Endpoint  `json:"remote"`
	Source    Endpoint  `json:"source"`
	Dest      Endpoint  `json:"dest"`
	Options   []string  `json:"options"`
	Excludes  []string  `json:"excludes,omitempty"`
}

// BuildCommand assembles the rsync command line for cfg. It never fails:
// paths, hosts and unknown flags are passed through verbatim.
func BuildCommand(cfg Config) string {
	enabled := enabledSet(cfg.Options)
	parts := []string{"rsync"}
	parts = append(parts, flagParts(cfg.Options)...)

	if enabled[FlagExclude] {
		for _, pattern := range cfg.Excludes {
			parts = append(parts, fmt.Sprintf(`--exclude="%s"`, pattern))
		}
	}

	switch cfg.Direction {
	case ServerToServer:
		if port := cfg.Source.port(); port != DefaultPort {
			parts = append(parts, sshShell(port))
		}
		parts = append(parts,
			cfg.Source.String(),
			fmt.Sprintf(`--rsync-path="ssh -p %s %s rsync"`, cfg.Dest.port(), cfg.Dest.login()),
			cfg.Dest.String(),
		)
	case RemoteToLocal:
		if enabled[FlagRemoteShell] && cfg.Remote.port() != DefaultPort {
			parts = append(parts, sshShell(cfg.Remote.port()))
		}
		parts = append(parts, cfg.Remote.String(), cfg.LocalPath)
	default:
		if enabled[FlagRemoteShell] && cfg.Remote.port() != DefaultPort {
			parts = append(parts, sshShell(cfg.Remote.port()))
		}
		parts = append(parts, cfg.LocalPath, cfg.Remote.String())
	}

	return strings.Join(nonEmpty(parts), " ")
}

// flagParts groups short flags into one -xyz argument and appends long
// flags after it. The remote-shell and exclude toggles are placed elsewhere.
func flagParts(options []string) []string {
	var short strings.Builder
	var long []string
	seen := make(map[string]bool, len(options))

	for _, raw := range options {
		flag := normalizeFlag(raw)
		if flag == "" || seen[flag] {
			continue
		}
		seen[flag] = true

		switch {
		case flag == FlagRemoteShell || flag == FlagExclude:
			continue
		case isLong(flag):
			long = append(long, flag)
		default:
			short.WriteString(flag)
		}
	}

	var parts []string
	if short.Len() > 0 {
		parts = append(parts, "-"+short.String())
	}
	return append(parts, long...)
}

func enabledSet(options []string) map[string]bool {
	set := make(map[string]bool, len(options))
	for _, raw := range options {
		set[normalizeFlag(raw)] = true
	}
	return set
}

func sshShell(port string) string {
	return fmt.Sprintf(`-e "ssh -p %s"`, port)
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
