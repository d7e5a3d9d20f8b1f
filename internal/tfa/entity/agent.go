package entity

import "strings"

const maxAgentDisplayLen = 255

// AgentDisplayName derives a coarse, human-readable device name from a
// User-Agent header. The name is display-only for the device list; it never
// participates in the trust decision.
func AgentDisplayName(userAgent string) string {
	ua := strings.TrimSpace(userAgent)
	if ua == "" {
		return "Unknown browser"
	}

	switch {
	case strings.Contains(ua, "Edg"):
		return "Edge"
	case strings.Contains(ua, "MSIE") || strings.Contains(ua, "Trident"):
		return "Internet Explorer"
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	}

	if len(ua) > maxAgentDisplayLen {
		return ua[:maxAgentDisplayLen]
	}

	return ua
}
