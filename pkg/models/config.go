package models

import (
	"github.com/mattsolo1/grove-tagstore/pkg/project"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

// List fields of the default project schema.
const (
	ListAbilities  = "Abilities"
	ListEffects    = "Effects"
	ListAttributes = "Attributes"
)

// DefaultVersion is written by InitProject when no version is given.
const DefaultVersion = "1.0"

var AbilityType = project.MustNodeType[Ability]("Ability",
	project.StringField("Name", func(a *Ability) string { return a.Name }, func(a *Ability, v string) { a.Name = v }),
	project.StringField("Description", func(a *Ability) string { return a.Description }, func(a *Ability, v string) { a.Description = v }),
	project.IntField("Level", func(a *Ability) int64 { return a.Level }, func(a *Ability, v int64) { a.Level = v }),
	project.FloatField("Cooldown", func(a *Ability) float64 { return a.Cooldown }, func(a *Ability, v float64) { a.Cooldown = v }),
	project.BoolField("Passive", func(a *Ability) bool { return a.Passive }, func(a *Ability, v bool) { a.Passive = v }),
	project.CategoryField("Categories", func(a *Ability) value.CategoryMap { return a.Categories }, func(a *Ability, v value.CategoryMap) { a.Categories = v }),
	project.StringListField("Effects", func(a *Ability) []string { return a.Effects }, func(a *Ability, v []string) { a.Effects = v }),
	project.TagMapField("EditorTags", func(a *Ability) value.Map { return a.EditorTags }, func(a *Ability, v value.Map) { a.EditorTags = v }),
)

var EffectType = project.MustNodeType[Effect]("Effect",
	project.StringField("Name", func(e *Effect) string { return e.Name }, func(e *Effect, v string) { e.Name = v }),
	project.FloatField("Duration", func(e *Effect) float64 { return e.Duration }, func(e *Effect, v float64) { e.Duration = v }),
	project.FloatField("Period", func(e *Effect) float64 { return e.Period }, func(e *Effect, v float64) { e.Period = v }),
	project.IntField("Stacks", func(e *Effect) int64 { return e.Stacks }, func(e *Effect, v int64) { e.Stacks = v }),
	project.ListField("Modifiers", func(e *Effect) []value.Value { return e.Modifiers }, func(e *Effect, v []value.Value) { e.Modifiers = v }),
	project.TagMapField("EditorTags", func(e *Effect) value.Map { return e.EditorTags }, func(e *Effect, v value.Map) { e.EditorTags = v }),
)

var AttributeType = project.MustNodeType[Attribute]("Attribute",
	project.StringField("Name", func(a *Attribute) string { return a.Name }, func(a *Attribute, v string) { a.Name = v }),
	project.FloatField("BaseValue", func(a *Attribute) float64 { return a.BaseValue }, func(a *Attribute, v float64) { a.BaseValue = v }),
	project.FloatField("MinValue", func(a *Attribute) float64 { return a.MinValue }, func(a *Attribute, v float64) { a.MinValue = v }),
	project.FloatField("MaxValue", func(a *Attribute) float64 { return a.MaxValue }, func(a *Attribute, v float64) { a.MaxValue = v }),
	project.TagMapField("EditorTags", func(a *Attribute) value.Map { return a.EditorTags }, func(a *Attribute, v value.Map) { a.EditorTags = v }),
)

var defaultSchema = project.MustSchema(
	project.ListBinding{Field: ListAbilities, Type: AbilityType},
	project.ListBinding{Field: ListEffects, Type: EffectType},
	project.ListBinding{Field: ListAttributes, Type: AttributeType},
)

// DefaultSchema returns the schema binding Abilities, Effects and Attributes.
func DefaultSchema() *project.Schema {
	return defaultSchema
}
