package roster

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExport_ReadBack(t *testing.T) {
	want, err := NewFakeGenerator(7).Generate(context.Background(), 3)
	require.NoError(t, err)

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteYAML(&buf, want))

		got, err := ParseYAML(buf.Bytes())
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roster mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("xlsx", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteXLSX(&buf, want))

		got, err := ParseXLSX(buf.Bytes())
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("roster mismatch (-want +got):\n%s", diff)
		}
	})
}
