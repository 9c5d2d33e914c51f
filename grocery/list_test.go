package grocery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"moodbites/persist"
	"moodbites/storage"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func newLoadedList(t *testing.T, kv storage.KV) *List {
	t.Helper()
	l := NewList(kv, WithIDFunc(sequentialIDs()))
	l.Load(context.Background())
	require.True(t, l.Ready())
	return l
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestList_Load(t *testing.T) {
	tests := []struct {
		name string
		kv   storage.KV
		want []string
	}{
		{name: "missing key", kv: storage.NewMemory(), want: []string{}},
		{name: "malformed", kv: storage.NewMemoryWith(map[string]string{StorageKey: "[{"}), want: []string{}},
		{name: "read failure", kv: storage.NewMemoryWithError(), want: []string{}},
		{
			name: "saved list keeps order",
			kv: storage.NewMemoryWith(map[string]string{StorageKey: `[
				{"id":"x","title":"Eggs","checked":true},
				{"id":"y","title":"Milk","checked":false,"source":"happy-2"}
			]`}),
			want: []string{"Eggs", "Milk"},
		},
		{
			name: "entries without id or title dropped",
			kv:   storage.NewMemoryWith(map[string]string{StorageKey: `[{"id":"","title":"Eggs"},{"id":"y","title":"  "},{"id":"z","title":"Milk"}]`}),
			want: []string{"Milk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList(tt.kv)
			assert.False(t, l.Ready())
			l.Load(context.Background())
			assert.True(t, l.Ready())
			assert.Equal(t, tt.want, titles(l.Items()))
		})
	}
}

func TestList_AddMany(t *testing.T) {
	tests := []struct {
		name    string
		batches [][]string
		want    []string
	}{
		{
			name:    "case-insensitive dedup within a batch, first wins",
			batches: [][]string{{"Milk", "milk", "Eggs"}},
			want:    []string{"Milk", "Eggs"},
		},
		{
			name:    "dedup across batches",
			batches: [][]string{{"Milk"}, {"Milk"}},
			want:    []string{"Milk"},
		},
		{
			name:    "existing title wins over differently cased re-add",
			batches: [][]string{{"milk"}, {"MILK", "Bread"}},
			want:    []string{"milk", "Bread"},
		},
		{
			name:    "whitespace trimmed and blanks skipped",
			batches: [][]string{{"  Flour  ", "", "   ", "\tSugar\n"}},
			want:    []string{"Flour", "Sugar"},
		},
		{
			name:    "trimmed titles compared for dedup",
			batches: [][]string{{"Rice"}, {" rice "}},
			want:    []string{"Rice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLoadedList(t, storage.NewMemory())
			ctx := waitCtx(t)
			for _, batch := range tt.batches {
				_, task := l.AddMany(ctx, batch, "")
				require.NoError(t, task.Wait(ctx))
			}
			assert.Equal(t, tt.want, titles(l.Items()))
		})
	}
}

func TestList_AddManyItems(t *testing.T) {
	l := newLoadedList(t, storage.NewMemory())
	ctx := waitCtx(t)

	added, task := l.AddMany(ctx, []string{"Eggs", "Spinach"}, "tired-2")
	require.NoError(t, task.Wait(ctx))
	require.Len(t, added, 2)
	assert.Equal(t, Item{ID: "item-1", Title: "Eggs", Source: "tired-2"}, added[0])
	assert.Equal(t, Item{ID: "item-2", Title: "Spinach", Source: "tired-2"}, added[1])

	added, task = l.AddMany(ctx, []string{"Butter"}, "")
	require.NoError(t, task.Wait(ctx))
	require.Len(t, added, 1)
	assert.Equal(t, ManualSource, added[0].Source)
	assert.False(t, added[0].Checked)

	added, task = l.AddMany(ctx, []string{"eggs"}, "")
	require.NoError(t, task.Wait(ctx))
	assert.Empty(t, added)
}

func TestList_DefaultIDsAreUnique(t *testing.T) {
	l := NewList(storage.NewMemory())
	l.Load(context.Background())

	added, _ := l.AddMany(context.Background(), []string{"A", "B", "C"}, "same-source")
	require.Len(t, added, 3)
	ids := map[string]bool{}
	for _, it := range added {
		assert.NotEmpty(t, it.ID)
		ids[it.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestList_ToggleIsSelfInverse(t *testing.T) {
	l := newLoadedList(t, storage.NewMemory())
	ctx := waitCtx(t)
	l.AddMany(ctx, []string{"Milk", "Eggs"}, "")

	before := l.Items()
	require.NoError(t, l.Toggle(ctx, "item-2").Wait(ctx))
	assert.True(t, l.Items()[1].Checked)
	assert.False(t, l.Items()[0].Checked)

	require.NoError(t, l.Toggle(ctx, "item-2").Wait(ctx))
	assert.Equal(t, before, l.Items())

	require.NoError(t, l.Toggle(ctx, "missing").Wait(ctx))
	assert.Equal(t, before, l.Items())
}

func TestList_Remove(t *testing.T) {
	l := newLoadedList(t, storage.NewMemory())
	ctx := waitCtx(t)
	l.AddMany(ctx, []string{"Milk", "Eggs", "Bread"}, "")

	require.NoError(t, l.Remove(ctx, "item-2").Wait(ctx))
	assert.Equal(t, []string{"Milk", "Bread"}, titles(l.Items()))

	require.NoError(t, l.Remove(ctx, "item-2").Wait(ctx))
	assert.Equal(t, []string{"Milk", "Bread"}, titles(l.Items()))

	// A removed title may be added again.
	added, task := l.AddMany(ctx, []string{"EGGS"}, "")
	require.NoError(t, task.Wait(ctx))
	require.Len(t, added, 1)
	assert.Equal(t, []string{"Milk", "Bread", "EGGS"}, titles(l.Items()))
}

func TestList_ClearChecked(t *testing.T) {
	l := newLoadedList(t, storage.NewMemory())
	ctx := waitCtx(t)
	l.AddMany(ctx, []string{"Milk", "Eggs", "Bread"}, "")

	l.Toggle(ctx, "item-1")
	l.Toggle(ctx, "item-3")
	require.NoError(t, l.ClearChecked(ctx).Wait(ctx))

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Eggs", items[0].Title)
	assert.Equal(t, "item-2", items[0].ID)

	require.NoError(t, l.ClearChecked(ctx).Wait(ctx))
	assert.Len(t, l.Items(), 1)
}

func TestList_WriteFailureKeepsMemory(t *testing.T) {
	kv := storage.NewMemory()
	l := newLoadedList(t, kv)
	ctx := waitCtx(t)

	boom := errors.New("read-only filesystem")
	kv.FailWrites(boom)

	_, task := l.AddMany(ctx, []string{"Milk"}, "")
	assert.ErrorIs(t, task.Wait(ctx), boom)
	assert.Equal(t, []string{"Milk"}, titles(l.Items()))
}

func TestList_MutationBeforeLoad(t *testing.T) {
	kv := storage.NewMemory()
	l := NewList(kv)
	ctx := waitCtx(t)

	_, task := l.AddMany(ctx, []string{"Milk"}, "")
	assert.ErrorIs(t, task.Wait(ctx), persist.ErrNotReady)
	assert.Zero(t, kv.Sets())
}

func TestList_RoundTrip(t *testing.T) {
	kv, err := storage.NewSQLiteKV(t.TempDir() + "/moodbites.db")
	require.NoError(t, err)
	defer kv.Close()
	ctx := waitCtx(t)

	l := newLoadedList(t, kv)
	l.AddMany(ctx, []string{"Milk", "Eggs"}, "happy-2")
	l.AddMany(ctx, []string{"Bread"}, "")
	l.Toggle(ctx, "item-2")
	require.NoError(t, l.Drain(ctx))

	fresh := NewList(kv)
	fresh.Load(ctx)
	assert.Equal(t, l.Items(), fresh.Items())
	assert.Equal(t, []Item{
		{ID: "item-1", Title: "Milk", Source: "happy-2"},
		{ID: "item-2", Title: "Eggs", Checked: true, Source: "happy-2"},
		{ID: "item-3", Title: "Bread", Source: ManualSource},
	}, fresh.Items())
}

func TestExportXLSX(t *testing.T) {
	l := newLoadedList(t, storage.NewMemory())
	ctx := waitCtx(t)
	l.AddMany(ctx, []string{"Milk", "Eggs"}, "happy-2")
	l.Toggle(ctx, "item-1")

	var buf bytes.Buffer
	require.NoError(t, l.ExportXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Item", "Checked", "Source"},
		{"Milk", "yes", "happy-2"},
		{"Eggs", "no", "happy-2"},
	}, rows)
}
