package tiled

import "strconv"

// PropertyType is the declared type of a custom property.
type PropertyType string

// Property types written by Tiled. An absent type means string.
const (
	PropertyString PropertyType = "string"
	PropertyInt    PropertyType = "int"
	PropertyFloat  PropertyType = "float"
	PropertyBool   PropertyType = "bool"
	PropertyColor  PropertyType = "color"
	PropertyFile   PropertyType = "file"
	PropertyObject PropertyType = "object"
	PropertyClass  PropertyType = "class"
)

// Property is a name/type/value triple. Values are kept as text.
type Property struct {
	Name  string
	Type  PropertyType
	Value string
}

// Properties is an ordered property bag.
type Properties []Property

// Get returns the named property.
func (p Properties) Get(name string) (Property, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// String returns the named value or def if absent.
func (p Properties) String(name, def string) string {
	if prop, ok := p.Get(name); ok {
		return prop.Value
	}
	return def
}

// Int returns the named value as an int, or def if absent or not numeric.
func (p Properties) Int(name string, def int) int {
	prop, ok := p.Get(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(prop.Value)
	if err != nil {
		return def
	}
	return v
}

// Float returns the named value as a float64, or def if absent or not numeric.
func (p Properties) Float(name string, def float64) float64 {
	prop, ok := p.Get(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(prop.Value, 64)
	if err != nil {
		return def
	}
	return v
}

// Bool returns the named value as a bool, or def if absent or not a bool.
func (p Properties) Bool(name string, def bool) bool {
	prop, ok := p.Get(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(prop.Value)
	if err != nil {
		return def
	}
	return v
}
