package dataset

import (
	"strconv"

	"housingdash/internal/fieldspec"
)

// Value is a typed cell. The concrete type fixes the tag, so a tag and its
// payload can never disagree.
type Value interface {
	Type() fieldspec.Type
	String() string
	sealed()
}

// StringValue holds a String-tagged cell.
type StringValue struct{ s string }

// IntegerValue holds an Integer-tagged cell.
type IntegerValue struct{ n int64 }

// FloatValue holds a Float-tagged cell.
type FloatValue struct{ f float64 }

func NewString(s string) StringValue { return StringValue{s: s} }
func NewInteger(n int64) IntegerValue { return IntegerValue{n: n} }
func NewFloat(f float64) FloatValue { return FloatValue{f: f} }
func (v StringValue) Type() fieldspec.Type { return fieldspec.String }
func (v IntegerValue) Type() fieldspec.Type { return fieldspec.Integer }
func (v FloatValue) Type() fieldspec.Type { return fieldspec.Float }
func (v StringValue) String() string { return v.s }
func (v IntegerValue) String() string { return strconv.FormatInt(v.n, 10) }
func (v FloatValue) String() string { return strconv.FormatFloat(v.f, 'f', -1, 64) }
func (v IntegerValue) Int() int64 { return v.n }
func (v FloatValue) Float() float64 { return v.f }
func (StringValue) sealed() {}
func (IntegerValue) sealed() {}
func (FloatValue) sealed() {}

// Entry is one typed value together with the field it came from.
type Entry struct {
	Field string
	Value Value
}

// Type is the declared type of the entry.
func (e Entry) Type() fieldspec.Type { return e.Value.Type() }

func (e Entry) String() string {
	return e.Field + " = " + e.Value.String() + " (" + e.Value.Type().String() + ")"
}

// Row holds one Entry per configured field, in field order.
type Row []Entry

// Get returns the entry for field.
func (r Row) Get(field string) (Entry, bool) {
	for _, e := range r {
		if e.Field == field {
			return e, true
		}
	}
	return Entry{}, false
}
