package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgentDisplayName(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			name: "chrome on linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
			want: "Chrome",
		},
		{
			name: "firefox",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:126.0) Gecko/20100101 Firefox/126.0",
			want: "Firefox",
		},
		{
			name: "edge reported before chrome token",
			ua:   "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36 Edg/126.0",
			want: "Edge",
		},
		{
			name: "safari without chrome token",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			want: "Safari",
		},
		{
			name: "old internet explorer",
			ua:   "Mozilla/5.0 (compatible; MSIE 10.0; Windows NT 6.1; Trident/6.0)",
			want: "Internet Explorer",
		},
		{
			name: "ie11 trident only",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Trident/7.0; rv:11.0) like Gecko",
			want: "Internet Explorer",
		},
		{
			name: "unknown agent passes through",
			ua:   "curl/8.5.0",
			want: "curl/8.5.0",
		},
		{
			name: "empty agent",
			ua:   "",
			want: "Unknown browser",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AgentDisplayName(tc.ua))
		})
	}
}

func TestAgentDisplayName_TruncatesLongAgents(t *testing.T) {
	long := strings.Repeat("x", 600)

	got := AgentDisplayName(long)
	assert.Len(t, got, 255)
	assert.Equal(t, long[:255], got)
}
