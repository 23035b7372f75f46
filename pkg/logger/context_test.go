package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	fallback := zap.NewNop().Sugar()
	scoped := zap.NewNop().Sugar().With("request_id", "abc")

	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, fallback))
}
