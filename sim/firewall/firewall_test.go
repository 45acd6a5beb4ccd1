package firewall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocker_CIDRRange(t *testing.T) {
	b := &Blocker{}
	require.NoError(t, b.AddBlockedRange("10.0.0.0/8"))

	assert.True(t, b.IsBlocked("10.0.0.0"))
	assert.True(t, b.IsBlocked("10.255.255.255"))
	assert.True(t, b.IsBlocked("10.42.1.9"))
	assert.False(t, b.IsBlocked("11.0.0.0"))
	assert.False(t, b.IsBlocked("9.255.255.255"))
}

func TestBlocker_CIDR_UnmaskedBaseAddress(t *testing.T) {
	// the host bits of the base address are ignored
	b := &Blocker{}
	require.NoError(t, b.AddBlockedRange("192.168.1.77/24"))

	assert.True(t, b.IsBlocked("192.168.1.0"))
	assert.True(t, b.IsBlocked("192.168.1.255"))
	assert.False(t, b.IsBlocked("192.168.2.1"))
}

func TestBlocker_CIDR_ZeroPrefixBlocksEverything(t *testing.T) {
	b := &Blocker{}
	require.NoError(t, b.AddBlockedRange("0.0.0.0/0"))

	assert.True(t, b.IsBlocked("0.0.0.0"))
	assert.True(t, b.IsBlocked("255.255.255.255"))
	assert.True(t, b.IsBlocked("128.7.3.1"))
}

func TestBlocker_DashRange_InclusiveBounds(t *testing.T) {
	b := &Blocker{}
	require.NoError(t, b.AddBlockedRange("192.168.0.10-192.168.0.20"))

	assert.True(t, b.IsBlocked("192.168.0.10"))
	assert.True(t, b.IsBlocked("192.168.0.20"))
	assert.True(t, b.IsBlocked("192.168.0.15"))
	assert.False(t, b.IsBlocked("192.168.0.9"))
	assert.False(t, b.IsBlocked("192.168.0.21"))
}

func TestBlocker_DashRange_SwappedBoundsNormalized(t *testing.T) {
	b := &Blocker{}
	require.NoError(t, b.AddBlockedRange("192.168.0.20-192.168.0.10"))

	assert.True(t, b.IsBlocked("192.168.0.15"))
}

func TestBlocker_SingleAddress(t *testing.T) {
	b := &Blocker{}
	require.NoError(t, b.AddBlockedRange("8.8.8.8"))

	assert.True(t, b.IsBlocked("8.8.8.8"))
	assert.False(t, b.IsBlocked("8.8.8.9"))
}

func TestBlocker_MalformedAddressFailsClosed(t *testing.T) {
	// GIVEN a blocker with no ranges at all
	b := &Blocker{}

	// THEN malformed addresses are still blocked, never admitted
	assert.True(t, b.IsBlocked("not-an-address"))
	assert.True(t, b.IsBlocked("1.2.3"))
	assert.True(t, b.IsBlocked("1.2.3.4.5"))
	assert.True(t, b.IsBlocked("256.1.1.1"))
	assert.True(t, b.IsBlocked(""))
	assert.True(t, b.IsBlocked("::1"), "IPv6 is outside the address space, fail closed")

	// while well-formed addresses pass
	assert.False(t, b.IsBlocked("1.2.3.4"))
}

func TestBlocker_InvalidSpecsRejected(t *testing.T) {
	b := &Blocker{}
	for _, spec := range []string{
		"10.0.0.0/33",
		"banana",
		"1.2.3.4-banana",
		"10.0.0.0/-1",
		"300.0.0.0/8",
	} {
		assert.Error(t, b.AddBlockedRange(spec), "spec %q should be rejected", spec)
	}
	assert.Empty(t, b.Ranges())
}

func TestNew_SkipsInvalidSpecsAndReportsThem(t *testing.T) {
	b, rejected := New([]string{"10.0.0.0/8", "garbage", "8.8.8.8"})

	assert.Equal(t, []string{"garbage"}, rejected)
	assert.Equal(t, []string{"10.0.0.0/8", "8.8.8.8"}, b.Ranges())
	assert.True(t, b.IsBlocked("10.1.2.3"))
	assert.True(t, b.IsBlocked("8.8.8.8"))
	assert.False(t, b.IsBlocked("4.4.4.4"))
}
