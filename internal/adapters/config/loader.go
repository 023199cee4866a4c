// Package config provides the scenario loader for rewind.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ScenarioLoader = (*Loader)(nil)

// Loader implements ports.ScenarioLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Discover expands paths relative to cwd into scenario files. A directory
// contributes every scenario file directly inside it, sorted by name. With no
// paths the default scenario file in cwd is used, if present.
func (l *Loader) Discover(cwd string, paths []string) ([]string, error) {
	explicit := len(paths) > 0
	if !explicit {
		paths = []string{domain.ScenarioFileName}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(file string) {
		if !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
	}

	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}
		p = filepath.Clean(p)

		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) && !explicit {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", p)
		}

		if !info.IsDir() {
			add(p)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(p, "*"+domain.ScenarioExt))
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}

	if len(files) == 0 {
		return nil, zerr.With(domain.ErrNoScenarios, "paths", strings.Join(paths, ", "))
	}
	return files, nil
}

// Load reads the scenario file at path and converts it into a validated domain.Scenario.
func (l *Loader) Load(path string) (*domain.Scenario, error) {
	var file Scenariofile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "file", path)
	}

	scenario, err := l.build(&file)
	if err != nil {
		return nil, zerr.With(err, "file", path)
	}
	scenario.Source = path
	return scenario, nil
}

func (l *Loader) build(file *Scenariofile) (*domain.Scenario, error) {
	if strings.TrimSpace(file.Name) == "" {
		return nil, domain.ErrMissingScenarioName
	}

	scenario := &domain.Scenario{
		Name:     file.Name,
		Entities: make(map[domain.EntityRef]map[domain.AttributeKey]float64, len(file.Entities)),
	}
	for name, values := range file.Entities {
		if name == "" {
			return nil, zerr.With(domain.ErrUnknownEntity, "entity", name)
		}
		attrs := make(map[domain.AttributeKey]float64, len(values))
		for key, value := range values {
			attrs[domain.AttributeKey(key)] = value
		}
		scenario.Entities[domain.EntityRef(name)] = attrs
	}

	v := validator{scenario: scenario}

	// Tasks are built in name order so subscriptions, and therefore broadcasts, are deterministic.
	for _, id := range slices.Sorted(maps.Keys(file.Tasks)) {
		spec, err := l.buildTask(&v, id, file.Tasks[id])
		if err != nil {
			return nil, zerr.With(err, "task", id)
		}
		scenario.Tasks = append(scenario.Tasks, spec)
	}
	v.indexTasks()

	seen := make(map[int]bool, len(file.Frames))
	for _, dto := range file.Frames {
		if dto.Frame < 0 {
			return nil, zerr.With(domain.ErrNegativeFrame, "frame", dto.Frame)
		}
		if dto.Frame > domain.MaxFrame {
			return nil, zerr.With(zerr.With(domain.ErrFrameTooLarge, "frame", dto.Frame), "max", domain.MaxFrame)
		}
		if seen[dto.Frame] {
			return nil, zerr.With(domain.ErrDuplicateFrame, "frame", dto.Frame)
		}
		seen[dto.Frame] = true

		frame := domain.Frame{Index: dto.Frame}
		for i, a := range dto.Actions {
			action, err := l.buildAction(&v, a)
			if err != nil {
				return nil, zerr.With(zerr.With(err, "frame", dto.Frame), "action", i)
			}
			frame.Actions = append(frame.Actions, action)
		}
		scenario.Frames = append(scenario.Frames, frame)
	}
	slices.SortFunc(scenario.Frames, func(a, b domain.Frame) int { return a.Index - b.Index })

	for i, dto := range file.Corrections {
		correction, err := v.correction(dto)
		if err != nil {
			return nil, zerr.With(err, "correction", i)
		}
		scenario.Corrections = append(scenario.Corrections, correction)
	}

	return scenario, nil
}

func (l *Loader) buildTask(v *validator, id string, dto *TaskDTO) (domain.TaskSpec, error) {
	if dto == nil {
		dto = &TaskDTO{}
	}

	variant, err := parseVariant(dto.Variant)
	if err != nil {
		return domain.TaskSpec{}, err
	}
	comparison, err := domain.ParseComparison(dto.Comparison)
	if err != nil {
		return domain.TaskSpec{}, err
	}
	owner := domain.EntityRef(dto.Owner)
	if err := v.entity(owner); err != nil {
		return domain.TaskSpec{}, err
	}

	keys := make([]domain.AttributeKey, 0, len(dto.Attributes))
	for _, a := range dto.Attributes {
		keys = append(keys, domain.AttributeKey(a))
	}

	cfg := domain.TaskConfig{
		Attributes: keys,
		Comparison: comparison,
		Threshold:  dto.Threshold,
		Gate: domain.TagGate{
			Required: domain.Tag(dto.RequiredTag),
			Excluded: domain.Tag(dto.ExcludedTag),
		},
		TriggerOnce: dto.TriggerOnce,
	}.Normalized()

	if len(cfg.Attributes) == 0 {
		l.Logger.Warn(fmt.Sprintf("task %q watches no attributes and will never activate", id))
	}

	return domain.TaskSpec{ID: domain.TaskID(id), Variant: variant, Owner: owner, Config: cfg}, nil
}

func (l *Loader) buildAction(v *validator, dto ActionDTO) (domain.Action, error) {
	set := 0
	for _, present := range []bool{dto.Execute != "", dto.Set != nil, dto.Cancel != "", dto.End != ""} {
		if present {
			set++
		}
	}
	if set != 1 {
		return domain.Action{}, domain.ErrInvalidAction
	}

	switch {
	case dto.Execute != "":
		spec, err := v.task(dto.Execute)
		if err != nil {
			return domain.Action{}, err
		}
		target := domain.EntityRef(dto.Target)
		if !target.IsZero() {
			if err := v.entity(target); err != nil {
				return domain.Action{}, err
			}
			if spec.Variant == domain.VariantOwner {
				l.Logger.Warn(fmt.Sprintf("task %q binds to its owner, target %q is ignored", spec.ID, target))
				target = ""
			}
		}
		return domain.Action{Kind: domain.ActionExecute, Task: spec.ID, Target: target}, nil

	case dto.Set != nil:
		entity := domain.EntityRef(dto.Set.Entity)
		if err := v.entity(entity); err != nil {
			return domain.Action{}, err
		}
		action := domain.Action{
			Kind:      domain.ActionSet,
			Entity:    entity,
			Attribute: domain.AttributeKey(dto.Set.Attribute),
			Value:     dto.Set.Value,
		}
		if dto.Set.Source != nil {
			tags := make([]domain.Tag, 0, len(dto.Set.Source.Tags))
			for _, t := range dto.Set.Source.Tags {
				tags = append(tags, domain.Tag(t))
			}
			action.Provenance = &domain.Provenance{SourceTags: domain.NewTagContainer(tags...)}
		}
		return action, nil

	case dto.Cancel != "":
		spec, err := v.task(dto.Cancel)
		if err != nil {
			return domain.Action{}, err
		}
		return domain.Action{Kind: domain.ActionCancel, Task: spec.ID}, nil

	default:
		spec, err := v.task(dto.End)
		if err != nil {
			return domain.Action{}, err
		}
		return domain.Action{Kind: domain.ActionEnd, Task: spec.ID}, nil
	}
}

// validator resolves references against what the scenario declares.
type validator struct {
	scenario *domain.Scenario
	tasks    map[domain.TaskID]domain.TaskSpec
}

func (v *validator) indexTasks() {
	v.tasks = make(map[domain.TaskID]domain.TaskSpec, len(v.scenario.Tasks))
	for _, spec := range v.scenario.Tasks {
		v.tasks[spec.ID] = spec
	}
}

func (v *validator) entity(ref domain.EntityRef) error {
	if _, ok := v.scenario.Entities[ref]; !ok {
		return zerr.With(domain.ErrUnknownEntity, "entity", ref)
	}
	return nil
}

func (v *validator) task(id string) (domain.TaskSpec, error) {
	spec, ok := v.tasks[domain.TaskID(id)]
	if !ok {
		return domain.TaskSpec{}, zerr.With(domain.ErrUnknownTask, "task", id)
	}
	return spec, nil
}

func (v *validator) correction(dto CorrectionDTO) (domain.Correction, error) {
	if dto.Frame < 0 || dto.At < 0 {
		return domain.Correction{}, zerr.With(domain.ErrNegativeFrame, "frame", min(dto.Frame, dto.At))
	}
	if dto.At > domain.MaxFrame {
		return domain.Correction{}, zerr.With(zerr.With(domain.ErrFrameTooLarge, "at", dto.At), "max", domain.MaxFrame)
	}
	if dto.Frame > dto.At {
		err := zerr.With(domain.ErrCorrectionInFuture, "frame", dto.Frame)
		return domain.Correction{}, zerr.With(err, "at", dto.At)
	}

	c := domain.Correction{At: dto.At, Frame: dto.Frame}

	if len(dto.Tasks) > 0 {
		c.Tasks = make(map[domain.TaskID]domain.SyncedTaskState, len(dto.Tasks))
	}
	for id, state := range dto.Tasks {
		spec, err := v.task(id)
		if err != nil {
			return domain.Correction{}, err
		}
		target := domain.EntityRef(state.Target)
		if !target.IsZero() {
			if err := v.entity(target); err != nil {
				return domain.Correction{}, err
			}
		}
		c.Tasks[spec.ID] = domain.SyncedTaskState{Active: state.Active, ExternalTarget: target}
	}

	if len(dto.Attributes) > 0 {
		c.Attributes = make(map[domain.EntityRef]map[domain.AttributeKey]float64, len(dto.Attributes))
	}
	for name, values := range dto.Attributes {
		entity := domain.EntityRef(name)
		if err := v.entity(entity); err != nil {
			return domain.Correction{}, err
		}
		attrs := make(map[domain.AttributeKey]float64, len(values))
		for key, value := range values {
			attrs[domain.AttributeKey(key)] = value
		}
		c.Attributes[entity] = attrs
	}

	return c, nil
}

func parseVariant(name string) (domain.TaskVariant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "owner":
		return domain.VariantOwner, nil
	case "target":
		return domain.VariantTarget, nil
	default:
		return domain.VariantOwner, zerr.With(domain.ErrUnknownVariant, "variant", name)
	}
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
