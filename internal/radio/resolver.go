package radio

import "strings"

// Control-path roots probed when the user supplies only a host or IP.
// Devices expose the control tree under /device on older firmware and
// under /fsapi on newer firmware.
const (
	pathRootDevice = "/device"
	pathRootFsapi  = "/fsapi"
)

// Candidates turns free-form user input into the ordered list of base URLs
// a connect attempt should try. The order is the trial priority: /device
// first, then /fsapi, then the bare address as a last resort. An input that
// already names a control path is trusted as-is and becomes the only
// candidate. The result contains no duplicates, the same input always
// yields the same list, and empty input yields nothing.
func Candidates(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "http://" + s
	}
	if hasControlPath(s) {
		return []string{s}
	}

	hostPort := strings.TrimRight(s, "/")
	authority := hostPort
	if i := strings.Index(hostPort, "//"); i >= 0 {
		authority = hostPort[i+2:]
	}
	base := hostPort
	if !strings.Contains(authority, ":") {
		base += ":80"
	}

	return dedupe([]string{
		base + pathRootDevice,
		base + pathRootFsapi,
		hostPort,
	})
}

// hasControlPath reports whether the URL already ends in /device or /fsapi,
// with or without a trailing slash.
func hasControlPath(s string) bool {
	t := strings.TrimSuffix(s, "/")
	return strings.HasSuffix(t, pathRootDevice) || strings.HasSuffix(t, pathRootFsapi)
}

// dedupe removes repeated candidates, keeping the first occurrence so the
// trial priority is preserved.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
