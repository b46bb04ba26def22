package terminal

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/colorprofile"
)

// EnvMarker is set in every child environment so shells can tell they run
// inside the desktop.
const EnvMarker = "TUIDESK=1"

var unixShells = []string{"/bin/bash", "/bin/zsh", "/bin/sh"}

// ResolveShell picks the program to run in a terminal window: the explicit
// request, then the configured shell, then $SHELL, then the first system
// shell that exists.
func ResolveShell(explicit, configured string) string {
	for _, s := range []string{explicit, configured, os.Getenv("SHELL")} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}

	if runtime.GOOS == "windows" {
		for _, shell := range []string{"pwsh.exe", "powershell.exe", "cmd.exe"} {
			if _, err := exec.LookPath(shell); err == nil {
				return shell
			}
		}
		return "cmd.exe"
	}

	for _, shell := range unixShells {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}

var (
	hostProfile     colorprofile.Profile
	hostProfileOnce sync.Once
)

// HostProfile detects the colour depth of the terminal the desktop runs in.
// The result is cached for the process lifetime.
func HostProfile() colorprofile.Profile {
	hostProfileOnce.Do(func() {
		hostProfile = colorprofile.Detect(os.Stdout, os.Environ())
	})
	return hostProfile
}

// ProfileEnv maps a colour profile to TERM and COLORTERM for a child. The
// interpreter always understands xterm cursor control, so only the colour
// depth follows the host.
func ProfileEnv(p colorprofile.Profile) (term, colorTerm string) {
	switch p {
	case colorprofile.TrueColor:
		return "xterm-256color", "truecolor"
	case colorprofile.ANSI256:
		return "xterm-256color", ""
	default:
		return "xterm", ""
	}
}

// ChildEnv returns base with the terminal variables for p appended. Existing
// TERM and COLORTERM entries are replaced.
func ChildEnv(base []string, p colorprofile.Profile) []string {
	term, colorTerm := ProfileEnv(p)
	env := make([]string, 0, len(base)+3)
	for _, kv := range base {
		if strings.HasPrefix(kv, "TERM=") || strings.HasPrefix(kv, "COLORTERM=") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, "TERM="+term)
	if colorTerm != "" {
		env = append(env, "COLORTERM="+colorTerm)
	}
	return append(env, EnvMarker)
}
