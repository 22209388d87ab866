package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tuition/core/record"
	logsvc "github.com/trezcool/tuition/services/logger"
)

// TestGateway checks the behaviour every record.Gateway must have.
func TestGateway(t *testing.T, gw record.Gateway) {
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		data, err := gw.Load(ctx, record.KeyFees)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, gw.Save(ctx, record.KeyStudents, []byte(`[{"id":"1"}]`)))
		require.NoError(t, gw.Save(ctx, record.KeyStudents, []byte(`[{"id":"1"},{"id":"2"}]`)))
		require.NoError(t, gw.Save(ctx, record.KeyAttendance, []byte(`[]`)))

		data, err := gw.Load(ctx, record.KeyStudents)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"},{"id":"2"}]`, string(data))

		data, err = gw.Load(ctx, record.KeyAttendance)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})

	t.Run("store round trip", func(t *testing.T) {
		for _, key := range record.AllKeys {
			require.NoError(t, gw.Save(ctx, key, []byte(`[]`)))
		}
		store, err := record.Open(ctx, gw, logsvc.NewDiscardLogger())
		require.NoError(t, err)
		st := CreateStudent(t, store, "Ali", 100)
		MarkAttendance(t, store, st.ID, "2024-01-10", record.StatusPresent)
		MarkHomework(t, store, st.ID, "2024-01-10", true)
		RecordFee(t, store, st.ID, 100, "2024-01-10")

		reloaded, err := record.Open(ctx, gw, logsvc.NewDiscardLogger())
		require.NoError(t, err)
		assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
	})
}
