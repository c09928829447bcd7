package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWith_AddsAttributes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	buf := &bytes.Buffer{}
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))

	// --- Act ---
	ctx = With(ctx, "philosopher", 3)
	FromContext(ctx).Info("took a fork")

	// --- Assert ---
	require.Contains(t, buf.String(), "philosopher=3")
	require.Contains(t, buf.String(), "took a fork")
}

func TestFromContext_PanicsWithoutLogger(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		FromContext(context.Background())
	})
}
