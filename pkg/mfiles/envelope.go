package mfiles

import (
	"context"
	"fmt"
)

// Property is an extra property given by name, applied in slice order.
type Property struct {
	Name  string
	Value any
}

// NewObjectEnvelope returns the template every object starts from: the Name
// and Class slots, and a Files array holding file (nil for none).
func NewObjectEnvelope(name string, classID int, file *FileRef) *ObjectEnvelope {
	return &ObjectEnvelope{
		PropertyValues: []PropertyValue{
			{
				PropertyDef: PropertyDefName,
				TypedValue:  PlainValue{DataType: DataTypeText, Value: name},
			},
			{
				PropertyDef: PropertyDefClass,
				TypedValue:  LookupValue{DataType: DataTypeLookup, Lookup: Lookup{Item: classID, Version: -1}},
			},
		},
		Files: []*FileRef{file},
	}
}

// BuildProperty resolves a property definition by name and builds its value.
// Lookup typed properties treat value as the name of a value list item owned
// by nobody or by one of ownerIDs; other types pass value through unchanged.
func (c *Client) BuildProperty(ctx context.Context, propertyName string, ownerIDs []int, value any) (PropertyValue, error) {
	info, err := c.Info(ctx, propertyName, CategoryProperty)
	if err != nil {
		return PropertyValue{}, err
	}
	pv := PropertyValue{PropertyDef: info.ID}
	if !info.DataType.IsLookup() {
		pv.TypedValue = PlainValue{DataType: info.DataType, Value: value}
		return pv, nil
	}
	valueName, ok := value.(string)
	if !ok {
		return PropertyValue{}, fmt.Errorf("property %q: lookup value must be an item name, got %T", propertyName, value)
	}
	itemID, err := c.ResolveValue(ctx, valueName, info.ValueList, ownerIDs)
	if err != nil {
		return PropertyValue{}, err
	}
	pv.TypedValue = LookupValue{DataType: info.DataType, Lookup: Lookup{Item: itemID, Version: -1}}
	return pv, nil
}

// BuildObject assembles the creation payload for an object of the given type
// and class. Extra properties are scoped to the owners {class, type}.
func (c *Client) BuildObject(ctx context.Context, name string, typeID, classID int, extra []Property, file *FileRef) (*ObjectEnvelope, error) {
	env := NewObjectEnvelope(name, classID, file)
	owners := []int{classID, typeID}
	for _, p := range extra {
		pv, err := c.BuildProperty(ctx, p.Name, owners, p.Value)
		if err != nil {
			return nil, err
		}
		env.PropertyValues = append(env.PropertyValues, pv)
	}
	return env, nil
}
