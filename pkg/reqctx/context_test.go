package reqctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestMeta(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestIDFromContext(ctx))

	_, ok := RequestMetaFromContext(WithRequestMeta(ctx, nil))
	assert.False(t, ok)

	ctx = WithRequestMeta(ctx, &RequestMeta{RequestID: "rid-1", RequestedAt: time.Now()})
	assert.Equal(t, "rid-1", RequestIDFromContext(ctx))
}

func TestSessionID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, SessionIDFromContext(ctx))
	assert.Equal(t, "s-1", SessionIDFromContext(WithSessionID(ctx, "s-1")))
}
