package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rewind/internal/adapters/config"
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const burnCheck = `
name: burn-check
entities:
  hero: {Health: 100}
  dummy: {Health: 200, Armor: 5}
tasks:
  watch-dummy:
    variant: target
    owner: hero
    attributes: [Health, Health, Armor]
    comparison: less_than
    threshold: 150
    requiredTag: Damage
    excludedTag: Damage.Heal
    triggerOnce: true
  self:
    owner: hero
    attributes: [Health]
frames:
  - frame: 2
    actions:
      - set: {entity: dummy, attribute: Health, value: 120, source: {tags: [Damage.Fire]}}
      - end: self
  - frame: 1
    actions:
      - {execute: watch-dummy, target: dummy}
      - {execute: self}
      - cancel: watch-dummy
corrections:
  - at: 4
    frame: 1
    tasks: {watch-dummy: {active: true, target: hero}}
    attributes: {dummy: {Health: 200}}
`

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), domain.FilePerm)
	require.NoError(t, err)
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	loader, _ := newLoader(t)
	path := createFile(t, t.TempDir(), domain.ScenarioFileName, burnCheck)

	sc, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "burn-check", sc.Name)
	assert.Equal(t, path, sc.Source)
	assert.Equal(t, map[domain.EntityRef]map[domain.AttributeKey]float64{
		"hero":  {"Health": 100},
		"dummy": {"Health": 200, "Armor": 5},
	}, sc.Entities)

	require.Len(t, sc.Tasks, 2)
	assert.Equal(t, domain.TaskSpec{
		ID:      "self",
		Variant: domain.VariantOwner,
		Owner:   "hero",
		Config:  domain.TaskConfig{Attributes: []domain.AttributeKey{"Health"}},
	}, sc.Tasks[0])
	assert.Equal(t, domain.TaskSpec{
		ID:      "watch-dummy",
		Variant: domain.VariantTarget,
		Owner:   "hero",
		Config: domain.TaskConfig{
			Attributes:  []domain.AttributeKey{"Health", "Armor"},
			Comparison:  domain.CompareLessThan,
			Threshold:   150,
			Gate:        domain.TagGate{Required: "Damage", Excluded: "Damage.Heal"},
			TriggerOnce: true,
		},
	}, sc.Tasks[1])

	require.Len(t, sc.Frames, 2)
	assert.Equal(t, domain.Frame{Index: 1, Actions: []domain.Action{
		{Kind: domain.ActionExecute, Task: "watch-dummy", Target: "dummy"},
		{Kind: domain.ActionExecute, Task: "self"},
		{Kind: domain.ActionCancel, Task: "watch-dummy"},
	}}, sc.Frames[0])

	set := sc.Frames[1].Actions[0]
	assert.Equal(t, domain.ActionSet, set.Kind)
	assert.Equal(t, domain.EntityRef("dummy"), set.Entity)
	assert.Equal(t, 120.0, set.Value)
	require.NotNil(t, set.Provenance)
	assert.True(t, set.Provenance.SourceTags.HasTag("Damage"))
	assert.Equal(t, domain.Action{Kind: domain.ActionEnd, Task: "self"}, sc.Frames[1].Actions[1])

	assert.Equal(t, []domain.Correction{{
		At:         4,
		Frame:      1,
		Tasks:      map[domain.TaskID]domain.SyncedTaskState{"watch-dummy": {Active: true, ExternalTarget: "hero"}},
		Attributes: map[domain.EntityRef]map[domain.AttributeKey]float64{"dummy": {"Health": 200}},
	}}, sc.Corrections)
	assert.Equal(t, 4, sc.LastFrame())
}

func TestLoader_LoadWarnings(t *testing.T) {
	t.Parallel()

	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn(`task "idle" watches no attributes and will never activate`)
	mockLogger.EXPECT().Warn(`task "idle" binds to its owner, target "hero" is ignored`)

	path := createFile(t, t.TempDir(), domain.ScenarioFileName, `
name: warnings
entities: {hero: {Health: 1}}
tasks:
  idle: {owner: hero}
frames:
  - frame: 0
    actions: [{execute: idle, target: hero}]
`)

	sc, err := loader.Load(path)
	require.NoError(t, err)
	assert.True(t, sc.Frames[0].Actions[0].Target.IsZero())
}

func TestLoader_LoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "invalid yaml",
			content: "name: [",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name:    "missing name",
			content: "entities: {hero: {Health: 1}}",
			want:    domain.ErrMissingScenarioName,
		},
		{
			name:    "unknown owner",
			content: "name: x\ntasks: {t: {owner: ghost, attributes: [Health]}}",
			want:    domain.ErrUnknownEntity,
		},
		{
			name:    "unknown variant",
			content: "name: x\nentities: {hero: {}}\ntasks: {t: {variant: sideways, owner: hero}}",
			want:    domain.ErrUnknownVariant,
		},
		{
			name:    "unknown comparison",
			content: "name: x\nentities: {hero: {}}\ntasks: {t: {owner: hero, comparison: roughly}}",
			want:    domain.ErrUnknownComparison,
		},
		{
			name:    "negative frame",
			content: "name: x\nframes: [{frame: -1}]",
			want:    domain.ErrNegativeFrame,
		},
		{
			name:    "frame beyond the maximum",
			content: "name: x\nframes: [{frame: 1000000000}]",
			want:    domain.ErrFrameTooLarge,
		},
		{
			name:    "correction arriving beyond the maximum",
			content: "name: x\ncorrections: [{at: 1000000000, frame: 0}]",
			want:    domain.ErrFrameTooLarge,
		},
		{
			name:    "duplicate frame",
			content: "name: x\nframes: [{frame: 1}, {frame: 1}]",
			want:    domain.ErrDuplicateFrame,
		},
		{
			name:    "action with two operations",
			content: "name: x\nentities: {hero: {}}\ntasks: {t: {owner: hero}}\nframes: [{frame: 0, actions: [{execute: t, end: t}]}]",
			want:    domain.ErrInvalidAction,
		},
		{
			name:    "empty action",
			content: "name: x\nframes: [{frame: 0, actions: [{}]}]",
			want:    domain.ErrInvalidAction,
		},
		{
			name:    "unknown task",
			content: "name: x\nframes: [{frame: 0, actions: [{cancel: ghost}]}]",
			want:    domain.ErrUnknownTask,
		},
		{
			name:    "unknown set entity",
			content: "name: x\nframes: [{frame: 0, actions: [{set: {entity: ghost, attribute: Health, value: 1}}]}]",
			want:    domain.ErrUnknownEntity,
		},
		{
			name:    "correction from the future",
			content: "name: x\ncorrections: [{at: 1, frame: 2}]",
			want:    domain.ErrCorrectionInFuture,
		},
		{
			name:    "correction with unknown target",
			content: "name: x\nentities: {hero: {}}\ntasks: {t: {owner: hero}}\ncorrections: [{at: 1, frame: 0, tasks: {t: {active: true, target: ghost}}}]",
			want:    domain.ErrUnknownEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loader, mockLogger := newLoader(t)
			mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

			path := createFile(t, t.TempDir(), domain.ScenarioFileName, tt.content)

			_, err := loader.Load(path)
			require.ErrorContains(t, err, tt.want.Error())
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		loader, _ := newLoader(t)
		_, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
	})
}

func TestLoader_Discover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	createFile(t, root, domain.ScenarioFileName, "name: default")
	suite := filepath.Join(root, "suite")
	require.NoError(t, os.Mkdir(suite, domain.DirPerm))
	b := createFile(t, suite, "b.yaml", "name: b")
	a := createFile(t, suite, "a.yaml", "name: a")
	createFile(t, suite, "notes.txt", "ignored")

	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{"default file", nil, []string{filepath.Join(root, domain.ScenarioFileName)}},
		{"directory", []string{"suite"}, []string{a, b}},
		{"file and overlapping directory", []string{"suite/b.yaml", suite}, []string{b, a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loader, _ := newLoader(t)
			got, err := loader.Discover(root, tt.paths)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("nothing found", func(t *testing.T) {
		t.Parallel()
		loader, _ := newLoader(t)
		_, err := loader.Discover(t.TempDir(), nil)
		require.ErrorContains(t, err, domain.ErrNoScenarios.Error())
	})

	t.Run("explicit path missing", func(t *testing.T) {
		t.Parallel()
		loader, _ := newLoader(t)
		_, err := loader.Discover(root, []string{"absent.yaml"})
		require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
	})
}
