// Package models declares the built-in gameplay node records and the schema
// the CLI uses to read and write framework projects.
package models

import "github.com/mattsolo1/grove-tagstore/pkg/value"

// Ability is an action a character can perform.
type Ability struct {
	Name        string
	Description string
	Level       int64
	Cooldown    float64 // seconds
	Passive     bool
	Categories  value.CategoryMap
	Effects     []string // names of Effect nodes applied on use
	EditorTags  value.Map
}

// Effect is a timed modification applied to a target.
type Effect struct {
	Name       string
	Duration   float64
	Period     float64
	Stacks     int64
	Modifiers  []value.Value
	EditorTags value.Map
}

// Attribute is a numeric stat with bounds.
type Attribute struct {
	Name       string
	BaseValue  float64
	MinValue   float64
	MaxValue   float64
	EditorTags value.Map
}

// Clamp bounds v to the attribute's range. A zero range leaves v unchanged.
func (a *Attribute) Clamp(v float64) float64 {
	if a.MinValue == 0 && a.MaxValue == 0 {
		return v
	}
	if v < a.MinValue {
		return a.MinValue
	}
	if v > a.MaxValue {
		return a.MaxValue
	}
	return v
}
