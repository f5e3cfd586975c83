package simd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISA(t *testing.T) {
	tests := []struct {
		in   string
		want ISA
		ok   bool
	}{
		{"generic", Generic, true},
		{"AESNI", AESNI, true},
		{" vaes256 ", VAES256, true},
		{"vaes512", VAES512, true},
		{"avx2", Generic, false},
		{"", Generic, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseISA(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestISAString(t *testing.T) {
	for _, isa := range []ISA{Generic, AESNI, VAES256, VAES512} {
		parsed, ok := ParseISA(isa.String())
		assert.True(t, ok)
		assert.Equal(t, isa, parsed)
	}
	assert.Equal(t, "unknown", ISA(42).String())
}

func TestISAWidth(t *testing.T) {
	assert.Equal(t, 128, Generic.Width())
	assert.Equal(t, 128, AESNI.Width())
	assert.Equal(t, 256, VAES256.Width())
	assert.Equal(t, 512, VAES512.Width())
}

func TestActiveISAIsAvailable(t *testing.T) {
	assert.True(t, isISAAvailable(ActiveISA()))
	assert.True(t, isISAEnabled(Generic))
	assert.LessOrEqual(t, int(KernelFor(128).ISA()), int(ActiveISA()))
	assert.LessOrEqual(t, int(KernelFor(256).ISA()), int(ActiveISA()))
	assert.LessOrEqual(t, int(KernelFor(512).ISA()), int(ActiveISA()))
}

func TestFeatureImplications(t *testing.T) {
	if HasVAES512() {
		assert.True(t, HasVAES256())
	}
	if HasVAES256() {
		assert.True(t, HasAESNI())
	}
}
