package backup

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/store"
	"github.com/cinenz0/finance-tracker/internal/testutil"
)

func TestSnapshotJSONIsFlat(t *testing.T) {
	snap := &Snapshot{
		Version: FormatVersion,
		Keys: map[string]string{
			store.KeyAccountName: "My Finances",
			store.KeyTheme:       "dark",
		},
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var flat map[string]string
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "1.0", flat["version"])
	assert.Equal(t, "My Finances", flat[store.KeyAccountName])
	assert.Equal(t, "dark", flat[store.KeyTheme])
	assert.Len(t, flat, 3, "no nesting, keys sit beside the version tag")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: `{"version":"1.0","finance_app_theme":"dark"}`},
		{name: "missing version", input: `{"finance_app_theme":"dark"}`, wantErr: true},
		{name: "not json", input: `not a snapshot`, wantErr: true},
		{name: "wrong shape", input: `{"version":{"nested":true}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Decode([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrRestore)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "1.0", snap.Version)
			assert.Equal(t, "dark", snap.Keys[store.KeyTheme])
		})
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := testutil.NewMemAdapter()
	source.Seed(store.KeyTransactions, `[{"id":"t1","source":"Coffee","amount":5}]`)
	source.Seed(store.KeyAccountName, "Pichau")
	source.Seed(store.KeyTheme, "light")

	snap, err := NewCodec(source).Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, snap.Version)
	assert.Len(t, snap.Keys, 3, "absent keys are omitted")

	target := testutil.NewMemAdapter()
	target.Seed(store.KeyTheme, "dark")
	require.NoError(t, NewCodec(target).Restore(ctx, snap))

	value, ok, err := target.Get(ctx, store.KeyTransactions)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"t1","source":"Coffee","amount":5}]`, value, "values restore verbatim")

	value, _, err = target.Get(ctx, store.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", value)
}

func TestRestoreNilSnapshot(t *testing.T) {
	err := NewCodec(testutil.NewMemAdapter()).Restore(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrRestore)
}

func TestRestoreWriteFailure(t *testing.T) {
	ctx := context.Background()
	adapter := testutil.NewMemAdapter()
	adapter.FailWrites()

	snap := &Snapshot{Version: FormatVersion, Keys: map[string]string{store.KeyTheme: "dark"}}
	err := NewCodec(adapter).Restore(ctx, snap)
	assert.ErrorIs(t, err, common.ErrRestore)
}

func TestFileSinkRoundTrip(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	require.NoError(t, err)

	snap := &Snapshot{Version: FormatVersion, Keys: map[string]string{store.KeyTheme: "dark"}}
	name := DailyName(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "finance-backup-2024-06-15.json", name)

	path, err := sink.Save(snap, name)
	require.NoError(t, err)
	assert.True(t, sink.Exists(name))

	loaded, err := sink.Open(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Version, loaded.Version)
	assert.Equal(t, snap.Keys, loaded.Keys)

	_, err = sink.Open(path + ".missing")
	assert.ErrorIs(t, err, common.ErrRestore)
}
