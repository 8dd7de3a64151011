// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry maps the unit labels found in a datasheet's annotation
// row to the parser for that column family. The set of labels is closed:
// it is fixed when the Registry is built and never changes afterwards.
package registry

import (
	"fmt"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// Label is a unit/type token from the sheet's unit row. Labels match
// exactly and are case-sensitive.
type Label string

const (
	LabelUnit          Label = "unit"
	LabelText          Label = "text"
	LabelAttribute     Label = "attribute"
	LabelWeeks         Label = "weeks"
	LabelQuarters      Label = "Calendar Quarters"
	LabelPeople        Label = "people"
	LabelDate          Label = "date"
	LabelEnd           Label = "end"
	LabelStart         Label = "start"
	LabelBlank         Label = ""
	LabelFlag          Label = "flag"
	LabelDollars       Label = "dollars"
	LabelRate          Label = "rate"
	LabelPercent       Label = "percent"
	LabelArea          Label = "sq mi"
	LabelDensity       Label = "people/sq mi"
	LabelPer100k       Label = "per 100,000"
	LabelDays          Label = "days"
	LabelPeoplePerYear Label = "people/year"
)

// Family groups labels that share a parsing rule.
type Family string

const (
	FamilyIdentity Family = "identity"
	FamilyInteger  Family = "integer"
	FamilyDate     Family = "date"
	FamilyBoolean  Family = "boolean"
	FamilyCurrency Family = "currency"
	FamilyRate     Family = "rate"
	FamilyDays     Family = "days"
)

// Parser converts one raw cell into a typed value.
type Parser func(types.RawCell) (types.Value, error)

var familyParsers = map[Family]Parser{
	FamilyIdentity: parseIdentity,
	FamilyInteger:  parseInt,
	FamilyDate:     parseDate,
	FamilyBoolean:  parseBool,
	FamilyCurrency: parseCurrency,
	FamilyRate:     parseRate,
	FamilyDays:     parseDays,
}

// builtin lists every registered label in display order.
var builtin = []struct {
	label  Label
	family Family
}{
	{LabelUnit, FamilyIdentity},
	{LabelText, FamilyIdentity},
	{LabelAttribute, FamilyInteger},
	{LabelWeeks, FamilyInteger},
	{LabelQuarters, FamilyInteger},
	{LabelPeople, FamilyInteger},
	{LabelPeoplePerYear, FamilyInteger},
	{LabelDate, FamilyDate},
	{LabelEnd, FamilyDate},
	{LabelStart, FamilyDate},
	{LabelBlank, FamilyDate},
	{LabelFlag, FamilyBoolean},
	{LabelDollars, FamilyCurrency},
	{LabelRate, FamilyRate},
	{LabelPercent, FamilyRate},
	{LabelArea, FamilyRate},
	{LabelDensity, FamilyRate},
	{LabelPer100k, FamilyRate},
	{LabelDays, FamilyDays},
}

// Registry resolves labels to parsers. The zero value is empty; use New.
type Registry struct {
	families map[Label]Family
	order    []Label
}

// New returns a registry holding every built-in label.
func New() *Registry {
	r := &Registry{
		families: make(map[Label]Family, len(builtin)),
		order:    make([]Label, 0, len(builtin)),
	}
	for _, b := range builtin {
		r.families[b.label] = b.family
		r.order = append(r.order, b.label)
	}
	return r
}

// Lookup returns the parser registered for label. The returned parser
// wraps every failure in a *ParseError carrying the label and raw cell.
func (r *Registry) Lookup(label string) (Parser, error) {
	l := Label(label)
	family, ok := r.families[l]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}

	parse := familyParsers[family]
	return func(c types.RawCell) (types.Value, error) {
		v, err := parse(c)
		if err != nil {
			return types.Value{}, &ParseError{Label: l, Raw: c, Err: err}
		}
		return v, nil
	}, nil
}

// Family returns the parsing family of label.
func (r *Registry) Family(label string) (Family, bool) {
	f, ok := r.families[Label(label)]
	return f, ok
}

// Labels returns the registered labels in display order.
func (r *Registry) Labels() []Label {
	out := make([]Label, len(r.order))
	copy(out, r.order)
	return out
}
