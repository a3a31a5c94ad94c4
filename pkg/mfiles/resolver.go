package mfiles

import (
	"context"
	"slices"
	"strconv"
)

// Category selects which metadata list a name is resolved against.
type Category string

const (
	CategoryObject   Category = "object"
	CategoryClass    Category = "class"
	CategoryProperty Category = "property"
)

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryObject, CategoryClass, CategoryProperty:
		return c, nil
	}
	return "", &NotFoundError{Kind: "category", Name: s}
}

// Types fetches the full list for a category. Nothing is cached.
func (c *Client) Types(ctx context.Context, category Category) ([]TypeInfo, error) {
	switch category {
	case CategoryObject:
		return c.ObjectTypes(ctx)
	case CategoryClass:
		return c.Classes(ctx)
	case CategoryProperty:
		return c.Properties(ctx)
	}
	return nil, &NotFoundError{Kind: "category", Name: string(category)}
}

// Info returns the type with exactly the given name.
func (c *Client) Info(ctx context.Context, name string, category Category) (*TypeInfo, error) {
	types, err := c.Types(ctx, category)
	if err != nil {
		return nil, err
	}
	return findType(types, name, category)
}

// InfoByID returns the type with the given ID.
func (c *Client) InfoByID(ctx context.Context, id int, category Category) (*TypeInfo, error) {
	types, err := c.Types(ctx, category)
	if err != nil {
		return nil, err
	}
	for i := range types {
		if types[i].ID == id {
			return &types[i], nil
		}
	}
	return nil, &NotFoundError{Kind: string(category), Name: strconv.Itoa(id)}
}

// ResolveID translates a name into the ID the server expects.
func (c *Client) ResolveID(ctx context.Context, name string, category Category) (int, error) {
	info, err := c.Info(ctx, name, category)
	if err != nil {
		return 0, err
	}
	return info.ID, nil
}

// ResolveValue returns the ID of the first item of the value list named
// valueName that either has no owner or is owned by one of ownerIDs.
// When several items qualify the first in list order wins.
func (c *Client) ResolveValue(ctx context.Context, valueName string, listID int, ownerIDs []int) (int, error) {
	items, err := c.ValueListItems(ctx, listID)
	if err != nil {
		return 0, err
	}
	item, err := findValue(items, valueName, ownerIDs)
	if err != nil {
		return 0, err
	}
	return item.ID, nil
}

func findType(types []TypeInfo, name string, category Category) (*TypeInfo, error) {
	for i := range types {
		if types[i].Name == name {
			return &types[i], nil
		}
	}
	return nil, &NotFoundError{Kind: string(category), Name: name}
}

func findValue(items []ValueListItem, name string, ownerIDs []int) (*ValueListItem, error) {
	for i := range items {
		it := &items[i]
		if it.Name != name {
			continue
		}
		if !it.HasOwner || slices.Contains(ownerIDs, it.OwnerID) {
			return it, nil
		}
	}
	return nil, &NotFoundError{Kind: "value", Name: name}
}

// Ref names an object type or class either by ID or by name. IDs are used as
// given; names are translated through the resolver.
type Ref struct {
	id     int
	name   string
	byName bool
}

// ByID refers to a type or class by its numeric ID.
func ByID(id int) Ref { return Ref{id: id} }

// ByName refers to a type or class by its name.
func ByName(name string) Ref { return Ref{name: name, byName: true} }

// ParseRef treats decimal strings as IDs and anything else as a name.
func ParseRef(s string) Ref {
	if id, err := strconv.Atoi(s); err == nil {
		return ByID(id)
	}
	return ByName(s)
}

func (r Ref) String() string {
	if r.byName {
		return r.name
	}
	return strconv.Itoa(r.id)
}

func (c *Client) resolveRef(ctx context.Context, r Ref, category Category) (int, error) {
	if !r.byName {
		return r.id, nil
	}
	return c.ResolveID(ctx, r.name, category)
}
