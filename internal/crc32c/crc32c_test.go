package crc32c

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumMatchesStdlibCastagnoliTable(t *testing.T) {
	table := crc32.MakeTable(crc32.Castagnoli)
	want := crc32.Checksum([]byte("POSITION"), table)
	assert.Equal(t, want, Sum("POSITION"))
}

func TestSumBytesMatchesSum(t *testing.T) {
	assert.Equal(t, Sum("KHR_materials_unlit"), SumBytes([]byte("KHR_materials_unlit")))
}

func TestConstIsDeterministic(t *testing.T) {
	assert.Equal(t, Const("accessors"), Const("accessors"))
	assert.NotEqual(t, Const("accessors"), Const("bufferViews"))
}

func TestHardwareAcceleratedDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { HardwareAccelerated() })
}
