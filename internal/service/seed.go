package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"GoMFiles/internal/model"
	"GoMFiles/internal/repo"

	"github.com/spf13/afero"
)

// DefaultVault is the GUID of the seeded vault.
const DefaultVault = "{01234567-89AB-CDEF-0123-456789ABCDEF}"

// SeedUser is an account created by ApplySeed.
type SeedUser struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Seed is the initial content of a fake vault.
type Seed struct {
	Vault           string                `json:"vault"`
	Users           []SeedUser            `json:"users"`
	ObjectTypes     []model.ObjectType    `json:"object_types"`
	Classes         []model.Class         `json:"classes"`
	Properties      []model.PropertyDef   `json:"properties"`
	ClassProperties []model.ClassProperty `json:"class_properties"`
	ValueLists      []model.ValueList     `json:"value_lists"`
	ValueListItems  []model.ValueListItem `json:"value_list_items"`
}

// DefaultSeed is a small document vault with one user.
func DefaultSeed() *Seed {
	return &Seed{
		Vault: DefaultVault,
		Users: []SeedUser{{Login: "TestUser", Password: "SecretPassword"}},
		ObjectTypes: []model.ObjectType{
			{ID: 0, Name: "Document"},
			{ID: 101, Name: "Project"},
		},
		Classes: []model.Class{
			{ID: 0, Name: "Unclassified Document", ObjectType: 0},
			{ID: 1, Name: "Report", ObjectType: 0},
			{ID: 2, Name: "Memo", ObjectType: 0},
			{ID: 3, Name: "Project", ObjectType: 101},
		},
		Properties: []model.PropertyDef{
			{ID: 0, Name: "Name or title", DataType: 1},
			{ID: 100, Name: "Class", DataType: 9, ValueList: 1},
			{ID: 1020, Name: "Document Type", DataType: 9, ValueList: 101},
			{ID: 1021, Name: "Document Title", DataType: 1},
			{ID: 1022, Name: "Pages", DataType: 2},
		},
		ClassProperties: []model.ClassProperty{
			{ClassID: 1, PropertyDef: 1020, Required: true},
			{ClassID: 1, PropertyDef: 1021},
		},
		ValueLists: []model.ValueList{
			{ID: 1, Name: "Classes"},
			{ID: 101, Name: "Document Types"},
		},
		ValueListItems: []model.ValueListItem{
			{ListID: 101, ItemID: 1, Name: "Report", Position: 0},
			{ListID: 101, ItemID: 2, Name: "Invoice", Position: 1},
			{ListID: 101, ItemID: 3, Name: "Memo", Position: 2},
			{ListID: 101, ItemID: 4, Name: "Report", HasOwner: true, OwnerID: 2, Position: 3},
		},
	}
}

// LoadSeed reads a JSON seed file.
func LoadSeed(fs afero.Fs, path string) (*Seed, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var s Seed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	if s.Vault == "" {
		s.Vault = DefaultVault
	}
	return &s, nil
}

// ApplySeed stores the structure and creates missing users. Applying the same
// seed twice leaves the vault unchanged.
func ApplySeed(ctx context.Context, s *Seed, vault *VaultService, users *UserService) error {
	if s == nil {
		return errors.New("nil seed")
	}
	for _, u := range s.Users {
		if _, err := users.Register(ctx, u.Login, u.Password); err != nil && !errors.Is(err, ErrLoginTaken) {
			return fmt.Errorf("seed user %s: %w", u.Login, err)
		}
	}
	existing, err := vault.structure.ValueLists(ctx)
	if err != nil {
		return err
	}
	known := map[int]bool{}
	for _, l := range existing {
		known[l.ID] = true
	}
	var items []model.ValueListItem
	for _, it := range s.ValueListItems {
		if !known[it.ListID] {
			items = append(items, it)
		}
	}
	err = errors.Join(
		upsert(ctx, vault.structure, s.ObjectTypes),
		upsert(ctx, vault.structure, s.Classes),
		upsert(ctx, vault.structure, s.Properties),
		upsert(ctx, vault.structure, s.ClassProperties),
		upsert(ctx, vault.structure, s.ValueLists),
		upsert(ctx, vault.structure, items),
	)
	if err != nil {
		return fmt.Errorf("seed structure: %w", err)
	}
	return nil
}

func upsert[T any](ctx context.Context, r repo.StructureRepository, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return r.Upsert(ctx, &rows)
}
