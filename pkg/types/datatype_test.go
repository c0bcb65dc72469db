package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataTypeValid(t *testing.T) {
	require.True(t, DTNone.Valid())
	require.True(t, DTTranslatedFSString.Valid())
	require.False(t, DataType(34).Valid())
	require.False(t, DataType(63).Valid())
}

func TestDataTypeClasses(t *testing.T) {
	require.True(t, DTString.IsText())
	require.True(t, DTFixedString.IsText())
	require.False(t, DTWString.IsText())
	require.True(t, DTWString.IsWideText())
	require.True(t, DTLSWString.IsWideText())
	require.False(t, DTScratchBuffer.IsText())
}

func TestDataTypeString(t *testing.T) {
	require.Equal(t, "None", DTNone.String())
	require.Equal(t, "ScratchBuffer", DTScratchBuffer.String())
	require.Equal(t, "TranslatedFSString", DTTranslatedFSString.String())
	require.Contains(t, DataType(40).String(), "40")
}

func TestMethodFromFlags(t *testing.T) {
	m, ok := MethodFromFlags(0x02)
	require.True(t, ok)
	require.Equal(t, CompressionLZ4, m)

	// High bits carry the level hint and do not affect the method.
	m, ok = MethodFromFlags(0x41)
	require.True(t, ok)
	require.Equal(t, CompressionZlib, m)

	_, ok = MethodFromFlags(0x04)
	require.False(t, ok)
	_, ok = MethodFromFlags(0x0F)
	require.False(t, ok)
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("pak: member %q: %w", "meta.lsf", ErrNotFound)
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrCorrupt)

	var typed *Error
	require.True(t, errors.As(err, &typed))
	require.Equal(t, ErrKindNotFound, typed.Kind)
}
