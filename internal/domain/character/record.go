package character

import (
	"strconv"

	dnderr "github.com/KirkDiggler/charform/internal/errors"
)

// DefaultUserID is the user a record is opened for when none is configured
const DefaultUserID = "test"

// Record is one character definition as exchanged with the registry.
// Record is a value: every operation returns a new Record and leaves its input untouched.
type Record struct {
	UserID      string `json:"user_id"`
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Personality string `json:"personality"`
	Appearance  string `json:"appearance"`
	Setting     string `json:"setting"`
	Story       string `json:"story"`
	HP          int    `json:"hp"`
	MP          int    `json:"mp"`
	Vit         int    `json:"vit"`
	Dex         int    `json:"dex"`
	Agi         int    `json:"agi"`
	Inte        int    `json:"inte"`
	Luc         int    `json:"luc"`
	Fri         int    `json:"fri"`
	ImageName   string `json:"image_name"`
}

// NewRecord returns a record with form defaults for the given user.
// Identifiers stay empty until a category is selected.
func NewRecord(userID string) Record {
	if userID == "" {
		userID = DefaultUserID
	}

	return Record{
		UserID: userID,
		Age:    17,
		HP:     100,
		MP:     50,
		Vit:    10,
		Dex:    10,
		Agi:    10,
		Inte:   10,
		Luc:    10,
	}
}

// HasIdentifiers reports whether identifiers have been derived for the record
func (r Record) HasIdentifiers() bool {
	return r.CharacterID != "" && r.ImageName != ""
}

// Get returns the string form of a single field
func (r Record) Get(field Field) (string, error) {
	if p := r.intField(field); p != nil {
		return strconv.Itoa(*p), nil
	}
	if p := r.stringField(field); p != nil {
		return *p, nil
	}
	return "", dnderr.InvalidArgumentf("unknown field '%s'", field).
		WithMeta("field", string(field))
}

// SetField returns a copy of r with exactly one field replaced.
// Numeric fields must be base-10 integers; range checks are left to Validate.
func SetField(r Record, field Field, value string) (Record, error) {
	next := r

	if p := next.intField(field); p != nil {
		n, err := strconv.Atoi(value)
		if err != nil {
			return r, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument,
				"field '"+string(field)+"' requires an integer").
				WithMeta("field", string(field))
		}
		*p = n
		return next, nil
	}

	if p := next.stringField(field); p != nil {
		*p = value
		return next, nil
	}

	return r, dnderr.InvalidArgumentf("unknown field '%s'", field).
		WithMeta("field", string(field))
}

// Overlay reconciles a remotely generated record onto the local one.
// The identity fields (user, character id, image name) always come from local;
// everything else is taken from remote wholesale.
func Overlay(local, remote Record) Record {
	next := remote
	next.UserID = local.UserID
	next.CharacterID = local.CharacterID
	next.ImageName = local.ImageName
	return next
}

func (r *Record) intField(field Field) *int {
	switch field {
	case FieldAge:
		return &r.Age
	case FieldHP:
		return &r.HP
	case FieldMP:
		return &r.MP
	case FieldVit:
		return &r.Vit
	case FieldDex:
		return &r.Dex
	case FieldAgi:
		return &r.Agi
	case FieldInte:
		return &r.Inte
	case FieldLuc:
		return &r.Luc
	case FieldFri:
		return &r.Fri
	}
	return nil
}

func (r *Record) stringField(field Field) *string {
	switch field {
	case FieldUserID:
		return &r.UserID
	case FieldCharacterID:
		return &r.CharacterID
	case FieldName:
		return &r.Name
	case FieldPersonality:
		return &r.Personality
	case FieldAppearance:
		return &r.Appearance
	case FieldSetting:
		return &r.Setting
	case FieldStory:
		return &r.Story
	case FieldImageName:
		return &r.ImageName
	}
	return nil
}
