package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildReleaseScript(t *testing.T) {
	adapter := NewPackagingBuildAdapter("/repo", "", "", false)
	assert.Equal(t,
		"Import-Module ./build.psm1; Start-PSBuild -Clean -Configuration Release -CrossGen",
		adapter.buildReleaseScript())
}

func TestBuildReleaseScriptWithRuntimeFeed(t *testing.T) {
	adapter := NewPackagingBuildAdapter("/repo", "https://feed.example.com/v3", "secret", true)
	assert.Equal(t,
		"Import-Module ./build.psm1; Start-PSBuild -Clean -Configuration Release -CrossGen"+
			" -RuntimeSourceFeed 'https://feed.example.com/v3'"+
			" -RuntimeSourceFeedSecret 'secret' -InteractiveAuth",
		adapter.buildReleaseScript())
}

func TestBuildReleaseScriptQuotesCredential(t *testing.T) {
	adapter := NewPackagingBuildAdapter("/repo", "https://feed.example.com/v3", "it's;$(Remove-Item x)", false)
	script := adapter.buildReleaseScript()
	// The quote is doubled so the value stays inside the literal and
	// cannot terminate it.
	assert.Contains(t, script, "-RuntimeSourceFeedSecret 'it''s;$(Remove-Item x)'")
}

func TestPwshQuote(t *testing.T) {
	assert.Equal(t, "'plain'", pwshQuote("plain"))
	assert.Equal(t, "'a''b'", pwshQuote("a'b"))
	assert.Equal(t, "''''", pwshQuote("'"))
}
