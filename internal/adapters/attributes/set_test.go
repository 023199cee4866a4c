package attributes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rewind/internal/adapters/attributes"
	"go.trai.ch/rewind/internal/core/domain"
)

func TestSet_SubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	set := attributes.NewSet("hero", map[domain.AttributeKey]float64{"Health": 100})

	var first, second int
	set.Subscribe("Health", "task-a", func(domain.AttributeChangeEvent) { first++ })
	set.Subscribe("Health", "task-a", func(domain.AttributeChangeEvent) { second++ })

	assert.Equal(t, []domain.TaskID{"task-a"}, set.Subscribers("Health"))
	assert.Equal(t, 1, set.SubscriptionCount())

	set.SetValue("Health", 90, nil)
	assert.Equal(t, 0, first, "replaced callback is not called")
	assert.Equal(t, 1, second)
}

func TestSet_SetValueDeliversEvent(t *testing.T) {
	t.Parallel()

	set := attributes.NewSet("hero", map[domain.AttributeKey]float64{"Health": 100})
	prov := &domain.Provenance{SourceTags: domain.NewTagContainer("Damage.Fire")}

	var got []domain.AttributeChangeEvent
	set.Subscribe("Health", "task-a", func(e domain.AttributeChangeEvent) { got = append(got, e) })
	set.Subscribe("Mana", "task-a", func(e domain.AttributeChangeEvent) { got = append(got, e) })

	set.SetValue("Health", 75, prov)

	require.Len(t, got, 1)
	assert.Equal(t, domain.AttributeChangeEvent{Key: "Health", OldValue: 100, NewValue: 75, Provenance: prov}, got[0])

	v, ok := set.Value("Health")
	require.True(t, ok)
	assert.InDelta(t, 75, v, 0)
}

func TestSet_UnsubscribeDuringDispatch(t *testing.T) {
	t.Parallel()

	set := attributes.NewSet("hero", nil)

	var order []domain.TaskID
	set.Subscribe("Health", "a", func(domain.AttributeChangeEvent) {
		order = append(order, "a")
		set.Unsubscribe("Health", "b")
		set.Subscribe("Health", "c", func(domain.AttributeChangeEvent) { order = append(order, "c") })
	})
	set.Subscribe("Health", "b", func(domain.AttributeChangeEvent) { order = append(order, "b") })

	set.SetValue("Health", 1, nil)

	assert.Equal(t, []domain.TaskID{"a"}, order, "removed subscribers are skipped, new ones wait for the next write")
	assert.Equal(t, []domain.TaskID{"a", "c"}, set.Subscribers("Health"))
}

func TestSet_UnsubscribeUnknownIsNoop(t *testing.T) {
	t.Parallel()

	set := attributes.NewSet("hero", nil)
	set.Unsubscribe("Health", "ghost")
	assert.Equal(t, 0, set.SubscriptionCount())
}

func TestSet_RestoreDoesNotNotify(t *testing.T) {
	t.Parallel()

	set := attributes.NewSet("hero", map[domain.AttributeKey]float64{"Health": 10})
	calls := 0
	set.Subscribe("Health", "a", func(domain.AttributeChangeEvent) { calls++ })

	set.Restore(map[domain.AttributeKey]float64{"Health": 50})

	assert.Equal(t, 0, calls)
	assert.Equal(t, map[domain.AttributeKey]float64{"Health": 50}, set.Values())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := attributes.NewRegistry()
	_, err := reg.Add("hero", map[domain.AttributeKey]float64{"Health": 100})
	require.NoError(t, err)
	_, err = reg.Add("dummy", map[domain.AttributeKey]float64{"Health": 200})
	require.NoError(t, err)

	_, err = reg.Add("hero", nil)
	require.ErrorContains(t, err, domain.ErrDuplicateEntity.Error())
	_, err = reg.Add("", nil)
	require.ErrorContains(t, err, domain.ErrUnknownEntity.Error())

	src, ok := reg.Resolve("hero")
	require.True(t, ok)
	require.NotNil(t, src)

	_, ok = reg.Resolve("nobody")
	assert.False(t, ok)

	assert.Equal(t, []domain.EntityRef{"dummy", "hero"}, reg.Entities())

	snap := reg.Snapshot()
	hero, _ := reg.Set("hero")
	hero.SetValue("Health", 1, nil)
	reg.Restore(snap)

	v, _ := hero.Value("Health")
	assert.InDelta(t, 100, v, 0)
}
