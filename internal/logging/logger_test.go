package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	_, ok := Lookup(context.Background())
	assert.False(t, ok)

	var buf bytes.Buffer
	ctx := IntoContext(context.Background(), zerolog.New(&buf).With().Str("request_id", "req-1").Logger())

	logger, ok := Lookup(ctx)
	require.True(t, ok)
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestLookupNilContext(t *testing.T) {
	_, ok := Lookup(nil)
	assert.False(t, ok)
}
