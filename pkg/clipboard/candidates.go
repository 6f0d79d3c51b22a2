package clipboard

import native "github.com/atotto/clipboard"

// Candidates returns the clipboard candidates for a GOOS value, most
// preferred first.
func Candidates(goos string) []Candidate {
	switch goos {
	case "darwin":
		return []Candidate{Command{Program: "pbcopy"}}
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		return []Candidate{
			Command{Program: "wl-copy"},
			Command{Program: "xclip", Args: []string{"-selection", "clipboard"}},
			Command{Program: "xsel", Args: []string{"--clipboard", "--input"}},
		}
	case "android":
		return []Candidate{Command{Program: "termux-clipboard-set"}}
	case "windows":
		candidates := []Candidate{Command{Program: "clip"}}
		if !native.Unsupported {
			candidates = append(candidates, Library{})
		}
		return candidates
	default:
		return nil
	}
}
