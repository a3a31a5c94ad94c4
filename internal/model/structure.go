package model

// ObjectType is a kind of object, e.g. Document.
type ObjectType struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"not null"`
}

// Class belongs to an object type.
type Class struct {
	ID         int    `gorm:"primaryKey;autoIncrement:false"`
	Name       string `gorm:"not null"`
	ObjectType int    `gorm:"not null;index"`
}

// PropertyDef describes a property. ValueList is set for lookup data types.
type PropertyDef struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null"`
	DataType  int    `gorm:"not null"`
	ValueList int
}

// ClassProperty binds a property definition to a class.
type ClassProperty struct {
	ClassID     int `gorm:"primaryKey;autoIncrement:false"`
	PropertyDef int `gorm:"primaryKey;autoIncrement:false"`
	Required    bool
}

// ValueList is a list of selectable items.
type ValueList struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false"`
	Name     string `gorm:"not null"`
	HasOwner bool
	OwnerID  int
}

// ValueListItem is one entry of a value list. Position keeps list order.
type ValueListItem struct {
	Seq      uint   `gorm:"primaryKey"`
	ListID   int    `gorm:"not null;index"`
	ItemID   int    `gorm:"not null"`
	Name     string `gorm:"not null"`
	HasOwner bool
	OwnerID  int
	Position int `gorm:"not null;default:0"`
}
