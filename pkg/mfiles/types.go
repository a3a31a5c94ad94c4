package mfiles

import (
	"encoding/json"
	"fmt"
)

// DataType mirrors the server's MFDataType enumeration.
type DataType int

const (
	DataTypeUninitialized     DataType = 0
	DataTypeText              DataType = 1
	DataTypeInteger           DataType = 2
	DataTypeFloating          DataType = 3
	DataTypeDate              DataType = 5
	DataTypeTime              DataType = 6
	DataTypeTimestamp         DataType = 7
	DataTypeBoolean           DataType = 8
	DataTypeLookup            DataType = 9
	DataTypeMultiSelectLookup DataType = 10
	DataTypeInteger64         DataType = 11
	DataTypeFILETIME          DataType = 12
	DataTypeMultiLineText     DataType = 13
)

// IsLookup reports whether values of this type reference value list items.
func (d DataType) IsLookup() bool {
	return d == DataTypeLookup || d == DataTypeMultiSelectLookup
}

// Built-in property definitions and object types.
const (
	PropertyDefName  = 0
	PropertyDefClass = 100

	// ObjectTypeDocument is the built-in document object type.
	ObjectTypeDocument = 0
	// ClassUnclassifiedDocument is the built-in document class.
	ClassUnclassifiedDocument = 0
)

// TypeInfo describes an object type, a class or a property definition.
// Only property definitions carry DataType and ValueList.
type TypeInfo struct {
	ID        int      `json:"ID"`
	Name      string   `json:"Name"`
	DataType  DataType `json:"DataType,omitempty"`
	ValueList int      `json:"ValueList,omitempty"`
}

// ClassDetails is returned by structure/classes/{id}.
type ClassDetails struct {
	ID                int                     `json:"ID"`
	Name              string                  `json:"Name"`
	ObjectType        int                     `json:"ObjType"`
	NamePropertyDef   int                     `json:"NamePropertyDef"`
	AssociatedProps   []AssociatedPropertyDef `json:"AssociatedPropertyDefs"`
	TemplateAvailable bool                    `json:"TemplatesAvailable"`
}

// AssociatedPropertyDef is a property definition bound to a class.
type AssociatedPropertyDef struct {
	PropertyDef int  `json:"PropertyDef"`
	Required    bool `json:"Required"`
}

// ValueList is an entry of valuelists.
type ValueList struct {
	ID       int    `json:"ID"`
	Name     string `json:"Name"`
	HasOwner bool   `json:"HasOwner"`
	OwnerID  int    `json:"OwnerID"`
}

// ValueListItem is a selectable option of a value list. Names are not unique
// across owners.
type ValueListItem struct {
	ID       int    `json:"ID"`
	Name     string `json:"Name"`
	HasOwner bool   `json:"HasOwner"`
	OwnerID  int    `json:"OwnerID"`
}

type valueListItems struct {
	Items []ValueListItem `json:"Items"`
}

// ObjVer identifies one version of an object.
type ObjVer struct {
	ID      int `json:"ID"`
	Type    int `json:"Type"`
	Version int `json:"Version"`
}

// ObjectFile is a file attached to an object version.
type ObjectFile struct {
	ID        int    `json:"ID"`
	Name      string `json:"Name"`
	Extension string `json:"Extension"`
	Size      int64  `json:"Size"`
}

// ObjectVersion is the server's view of an object version.
type ObjectVersion struct {
	Title            string       `json:"Title"`
	ObjVer           ObjVer       `json:"ObjVer"`
	Class            int          `json:"Class"`
	ObjectCheckedOut bool         `json:"ObjectCheckedOut"`
	Deleted          bool         `json:"Deleted"`
	Files            []ObjectFile `json:"Files"`
}

// SearchResults wraps the items returned by objects?... queries.
type SearchResults struct {
	Items       []ObjectVersion `json:"Items"`
	MoreResults bool            `json:"MoreResults"`
}

// UploadInfo is returned by the file staging endpoint.
type UploadInfo struct {
	UploadID int   `json:"UploadID"`
	Size     int64 `json:"Size"`
}

// FileRef attaches a staged upload to a new object.
type FileRef struct {
	UploadID  int    `json:"UploadID"`
	Title     string `json:"Title"`
	Extension string `json:"Extension"`
	Size      int64  `json:"Size"`
}

// TypedValue is either a PlainValue or a LookupValue.
type TypedValue interface {
	Type() DataType
	isTypedValue()
}

// PlainValue carries a literal value, passed through as given.
type PlainValue struct {
	DataType DataType
	Value    any
}

func (v PlainValue) Type() DataType { return v.DataType }
func (PlainValue) isTypedValue() {}

func (v PlainValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DataType DataType `json:"DataType"`
		Value    any      `json:"Value"`
	}{v.DataType, v.Value})
}

// Lookup references a value list item. Version -1 means latest.
type Lookup struct {
	Item    int `json:"Item"`
	Version int `json:"Version"`
}

// LookupValue carries a reference to a value list item.
type LookupValue struct {
	DataType DataType
	Lookup   Lookup
}

func (v LookupValue) Type() DataType { return v.DataType }
func (LookupValue) isTypedValue() {}

func (v LookupValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DataType DataType `json:"DataType"`
		Lookup   Lookup   `json:"Lookup"`
	}{v.DataType, v.Lookup})
}

// PropertyValue is a single property on an object.
type PropertyValue struct {
	PropertyDef int        `json:"PropertyDef"`
	TypedValue  TypedValue `json:"TypedValue"`
}

func (p *PropertyValue) UnmarshalJSON(b []byte) error {
	var raw struct {
		PropertyDef int `json:"PropertyDef"`
		TypedValue  struct {
			DataType DataType `json:"DataType"`
			Value    any      `json:"Value"`
			Lookup   *Lookup  `json:"Lookup"`
		} `json:"TypedValue"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.PropertyDef = raw.PropertyDef
	tv := raw.TypedValue
	switch {
	case tv.Lookup != nil && tv.Value != nil:
		return fmt.Errorf("property %d: both Value and Lookup set", raw.PropertyDef)
	case tv.Lookup != nil:
		p.TypedValue = LookupValue{DataType: tv.DataType, Lookup: *tv.Lookup}
	default:
		p.TypedValue = PlainValue{DataType: tv.DataType, Value: tv.Value}
	}
	return nil
}

// ObjectEnvelope is the payload of an object creation request.
// PropertyValues[0] is always Name and PropertyValues[1] is always Class.
// Files always holds exactly one entry; a nil entry means no file.
type ObjectEnvelope struct {
	PropertyValues []PropertyValue `json:"PropertyValues"`
	Files          []*FileRef      `json:"Files"`
}
