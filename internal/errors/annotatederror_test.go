package errors

import (
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnnotatedError(t *testing.T) {
	err := New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	// Assert that wrapping sentinel errors work as expected.
	sentinel := NewSentinel("sentinel error")
	require.NotErrorIs(t, err, NewSentinel("sentinel error"))
	wrapped := Wrap(sentinel, "wrapper")
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, "wrapper: sentinel error", wrapped.Error())

	// Ensure log values are coming through.
	var annotated AnnotatedError
	require.ErrorAs(t, err, &annotated)
	group := annotated.LogValue().Group()
	require.Contains(t, group, slog.String("id", "123"))

	// Assert there's a valid source
	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.NotEqual(t, -1, sourceIdx)
	source := group[sourceIdx]
	require.Contains(t, source.Value.String(), "annotatederror_test.go")
}

func TestWrapChain(t *testing.T) {
	sentinel := NewSentinel("root cause")
	err := Wrap(Wrap(sentinel, "inner", slog.String("key", "value")), "outer")

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, "outer: inner: root cause", err.Error())

	var annotated AnnotatedError
	require.ErrorAs(t, err, &annotated)
	group := annotated.LogValue().Group()
	wrappedIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "wrapped"
	})
	require.NotEqual(t, -1, wrappedIdx)
}
