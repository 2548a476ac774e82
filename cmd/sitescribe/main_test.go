package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelis/sitescribe"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want sitescribe.Options
	}{
		{
			name: "full overlay",
			raw:  `{"mode":"sitemap","maxDepth":1,"maxPages":5,"followInternalOnly":false}`,
			want: sitescribe.Options{MaxDepth: 1, MaxPages: 5, FollowInternalOnly: false, Mode: sitescribe.ModeSitemap},
		},
		{
			name: "absent keys keep defaults",
			raw:  `{"maxPages":10}`,
			want: sitescribe.Options{MaxDepth: 3, MaxPages: 10, FollowInternalOnly: true, Mode: sitescribe.ModeAuto},
		},
		{
			name: "malformed JSON falls back to defaults",
			raw:  `{maxPages: 10`,
			want: sitescribe.DefaultOptions(),
		},
		{
			name: "empty blob keeps defaults",
			raw:  `{}`,
			want: sitescribe.DefaultOptions(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOptions(tt.raw))
		})
	}
}

func TestEmitterShapes(t *testing.T) {
	var buf bytes.Buffer
	emit := newEmitter(&buf)

	n := 2
	emit.Progress(sitescribe.Progress{Status: "crawling", Message: "m", CurrentURL: "https://x.test", PagesProcessed: &n})
	emit.Result(&sitescribe.Result{Success: true, Title: "T", URL: "https://x.test",
		Metadata: sitescribe.Metadata{PagesCount: 1, Mode: "single"}})
	emit.Error("boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3, "one JSON object per line")

	assert.JSONEq(t,
		`{"type":"progress","status":"crawling","message":"m","currentUrl":"https://x.test","pagesProcessed":2}`,
		lines[0])
	assert.Contains(t, lines[1], `"type":"result"`)
	assert.Contains(t, lines[1], `"pagesCount":1`)
	assert.JSONEq(t, `{"type":"error","error":"boom"}`, lines[2])
}
