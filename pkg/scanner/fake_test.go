package scanner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/pkg/scanner"
)

func TestFake_DetectsConfiguredSignature(t *testing.T) {
	t.Parallel()

	fake := scanner.NewFake([]byte("EICAR"))

	detected, err := fake.Scan(context.Background(), []byte("prefix EICAR suffix"), "a.bin")
	require.NoError(t, err)
	assert.True(t, detected)

	detected, err = fake.Scan(context.Background(), []byte("nothing here"), "a.bin")
	require.NoError(t, err)
	assert.False(t, detected)

	assert.Equal(t, 2, fake.Calls())
}

func TestFake_IgnoresEmptySignatures(t *testing.T) {
	t.Parallel()

	fake := scanner.NewFake(nil, []byte(""))

	detected, err := fake.Scan(context.Background(), []byte("anything"), "a.bin")
	require.NoError(t, err)
	assert.False(t, detected)
}

func TestFakeAll_RequiresEverySignature(t *testing.T) {
	t.Parallel()

	fake := scanner.NewFakeAll([]byte("SIGA"), []byte("SIGB"))

	detected, err := fake.Scan(context.Background(), []byte("has SIGA only"), "a.bin")
	require.NoError(t, err)
	assert.False(t, detected)

	detected, err = fake.Scan(context.Background(), []byte("has SIGA and SIGB both"), "a.bin")
	require.NoError(t, err)
	assert.True(t, detected)
}
