package pantry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemocake/pantry-planner/catalog"
	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/storage"
)

func testCatalog() *catalog.Index {
	return catalog.NewIndex(nil, []models.IngredientRecord{
		{ID: "egg", Name: "Egg", Category: "dairy", DefaultUnit: "piece"},
		{ID: "flour", Name: "Flour", Category: "baking", DefaultUnit: "g"},
		{ID: "milk", Name: "Milk", Category: "dairy", DefaultUnit: "ml"},
	})
}

func newTestLedger(t *testing.T) (*Ledger, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	return NewLedger(testCatalog(), store, nil), store
}

func TestSetCreatesWithDefaultUnit(t *testing.T) {
	l, _ := newTestLedger(t)

	entry, err := l.Set("egg", 6, SetOptions{})
	require.NoError(t, err)
	assert.Equal(t, 6.0, entry.Quantity)
	assert.Equal(t, "piece", entry.Unit)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestSetRejectsUnknownIngredient(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.Set("unobtainium", 1, SetOptions{})
	require.Error(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestSetClampsNegativeQuantity(t *testing.T) {
	l, _ := newTestLedger(t)

	entry, err := l.Set("flour", -5, SetOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, entry.Quantity)

	// arbitrary mutation sequences never leave a negative quantity behind
	_, _ = l.Set("flour", 200, SetOptions{})
	_, _ = l.Set("flour", -1, SetOptions{})
	l.Remove("flour")
	_, _ = l.Set("flour", 50, SetOptions{})
	for _, e := range l.List() {
		assert.GreaterOrEqual(t, e.Quantity, 0.0)
	}
}

func TestSetPreservesCreationTimestamp(t *testing.T) {
	l, _ := newTestLedger(t)

	first, err := l.Set("milk", 500, SetOptions{})
	require.NoError(t, err)
	second, err := l.Set("milk", 250, SetOptions{Notes: "half gone"})
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "half gone", second.Notes)
	assert.Equal(t, 250.0, second.Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	l, _ := newTestLedger(t)
	_, _ = l.Set("egg", 2, SetOptions{})
	_, _ = l.Set("milk", 500, SetOptions{})

	assert.True(t, l.Remove("egg"))
	assert.False(t, l.Remove("egg"))
	assert.Nil(t, l.Get("egg"))

	l.Clear()
	assert.Equal(t, 0, l.Len())
}

func TestIDSetOnlyPositiveQuantities(t *testing.T) {
	l, _ := newTestLedger(t)
	_, _ = l.Set("egg", 2, SetOptions{})
	_, _ = l.Set("flour", 0, SetOptions{})

	ids := l.IDSet()
	_, hasEgg := ids["egg"]
	_, hasFlour := ids["flour"]
	assert.True(t, hasEgg)
	assert.False(t, hasFlour)
}

func TestChangeEventsFireInRegistrationOrder(t *testing.T) {
	l, _ := newTestLedger(t)

	var order []string
	l.Subscribe(func(ev ChangeEvent) { order = append(order, "first:"+string(ev.Action)) })
	l.Subscribe(func(ev ChangeEvent) { order = append(order, "second:"+string(ev.Action)) })

	_, _ = l.Set("egg", 1, SetOptions{})
	require.Equal(t, []string{"first:set", "second:set"}, order)
}

func TestPanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	l, _ := newTestLedger(t)

	called := false
	l.Subscribe(func(ChangeEvent) { panic("boom") })
	l.Subscribe(func(ChangeEvent) { called = true })

	_, err := l.Set("egg", 1, SetOptions{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 1, l.Len()) // the mutation itself survived
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	l, _ := newTestLedger(t)

	count := 0
	unsub := l.Subscribe(func(ChangeEvent) { count++ })
	_, _ = l.Set("egg", 1, SetOptions{})
	unsub()
	_, _ = l.Set("egg", 2, SetOptions{})
	assert.Equal(t, 1, count)
}

func TestSnapshotPersistedAfterMutation(t *testing.T) {
	l, store := newTestLedger(t)
	_, _ = l.Set("flour", 500, SetOptions{Location: "cupboard"})

	snap, err := store.LoadPantry()
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, "flour", snap[0].IngredientID)
	assert.Equal(t, "cupboard", snap[0].StorageLocation)

	// a fresh ledger over the same store restores the snapshot
	restored := NewLedger(testCatalog(), store, nil)
	assert.Equal(t, 500.0, restored.OnHand("flour"))
}

func TestImportExportRoundTripReplace(t *testing.T) {
	l, _ := newTestLedger(t)
	_, _ = l.Set("egg", 12, SetOptions{})
	_, _ = l.Set("flour", 1000, SetOptions{Location: "cupboard", Notes: "strong white"})

	exported := l.Export()
	assert.Equal(t, models.ExportVersion, exported.Version)
	assert.False(t, exported.ExportedAt.IsZero())

	other, _ := newTestLedger(t)
	_, _ = other.Set("milk", 999, SetOptions{})

	result := other.Import(exported, models.ImportReplace)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	assert.Equal(t, 0.0, other.OnHand("milk"))
	assert.Equal(t, 12.0, other.OnHand("egg"))
	assert.Equal(t, 1000.0, other.OnHand("flour"))
	entry := other.Get("flour")
	require.NotNil(t, entry)
	assert.Equal(t, "cupboard", entry.StorageLocation)
	assert.Equal(t, "strong white", entry.Notes)
}

func TestImportSkipsUnknownIds(t *testing.T) {
	l, _ := newTestLedger(t)

	result := l.Import(models.PantryExport{
		Version: models.ExportVersion,
		Items: []models.PantryExportItem{
			{IngredientID: "egg", Quantity: 6, Unit: "piece"},
			{IngredientID: "unicorn-dust", Quantity: 1, Unit: "g"},
		},
	}, models.ImportMerge)

	require.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, result.Total)
}

func TestImportRejectsMalformedPayload(t *testing.T) {
	l, _ := newTestLedger(t)
	result := l.Import(models.PantryExport{Version: models.ExportVersion}, models.ImportReplace)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
