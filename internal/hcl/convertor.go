package hcl

import (
	"fmt"

	"github.com/vk/wordgrid/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter binds evaluated cty values onto config.Overrides fields.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Assign converts val to the type of field and stores it in o. A null value
// leaves the field unset.
func (c *Converter) Assign(o *config.Overrides, field config.Field, val cty.Value) error {
	switch field {
	case config.FieldStartsWith:
		return decodeOptional(val, cty.String, &o.StartsWith)
	case config.FieldEndsWith:
		return decodeOptional(val, cty.String, &o.EndsWith)
	case config.FieldMultiple:
		return decodeOptional(val, cty.String, &o.Multiple)
	case config.FieldWordList:
		return decodeOptional(val, cty.String, &o.WordListPath)
	case config.FieldDouble:
		return decodeOptional(val, cty.Bool, &o.Double)
	case config.FieldReversed:
		return decodeOptional(val, cty.Bool, &o.Reversed)
	case config.FieldMinLength:
		return decodeLength(val, &o.MinLength)
	case config.FieldMaxLength:
		return decodeLength(val, &o.MaxLength)
	case config.FieldContains:
		return decodeList(val, &o.Contains)
	case config.FieldNotContain:
		return decodeList(val, &o.NotContain)
	}
	return fmt.Errorf("field %q cannot be set from a profile", field)
}

// decodeValue handles the conversion and decoding of a cty.Value into a Go
// pointer.
func decodeValue(val cty.Value, ty cty.Type, goVal any) error {
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	if converted.IsNull() {
		return nil
	}
	return gocty.FromCtyValue(converted, goVal)
}

func decodeOptional[T any](val cty.Value, ty cty.Type, target **T) error {
	if val.IsNull() {
		return nil
	}
	var v T
	if err := decodeValue(val, ty, &v); err != nil {
		return err
	}
	*target = &v
	return nil
}

func decodeLength(val cty.Value, target **int) error {
	if err := decodeOptional(val, cty.Number, target); err != nil {
		return err
	}
	if *target != nil && **target < 0 {
		n := **target
		*target = nil
		return fmt.Errorf("length must not be negative, got %d", n)
	}
	return nil
}

// decodeList accepts either a list of strings or a single string holding
// comma or space separated items.
func decodeList(val cty.Value, target *[]string) error {
	if val.IsNull() {
		return nil
	}
	if val.Type().Equals(cty.String) {
		*target = config.SplitList(val.AsString())
		if *target == nil {
			*target = []string{}
		}
		return nil
	}
	var items []string
	if err := decodeValue(val, cty.List(cty.String), &items); err != nil {
		return err
	}
	if items == nil {
		items = []string{}
	}
	*target = items
	return nil
}
