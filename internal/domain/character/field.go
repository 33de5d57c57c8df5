package character

import (
	dnderr "github.com/KirkDiggler/charform/internal/errors"
)

// Field names a record attribute by its wire name
type Field string

const (
	FieldUserID      Field = "user_id"
	FieldCharacterID Field = "character_id"
	FieldName        Field = "name"
	FieldAge         Field = "age"
	FieldPersonality Field = "personality"
	FieldAppearance  Field = "appearance"
	FieldSetting     Field = "setting"
	FieldStory       Field = "story"
	FieldHP          Field = "hp"
	FieldMP          Field = "mp"
	FieldVit         Field = "vit"
	FieldDex         Field = "dex"
	FieldAgi         Field = "agi"
	FieldInte        Field = "inte"
	FieldLuc         Field = "luc"
	FieldFri         Field = "fri"
	FieldImageName   Field = "image_name"
)

// AllFields lists every field in form order
var AllFields = []Field{
	FieldUserID, FieldCharacterID, FieldName, FieldAge,
	FieldPersonality, FieldAppearance, FieldSetting, FieldStory,
	FieldHP, FieldMP, FieldVit, FieldDex, FieldAgi, FieldInte, FieldLuc, FieldFri,
	FieldImageName,
}

// ParseField resolves a wire name to a Field
func ParseField(name string) (Field, error) {
	for _, f := range AllFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", dnderr.InvalidArgumentf("unknown field '%s'", name).
		WithMeta("field", name)
}

// Editable reports whether a user may change the field directly.
// Identity fields are fixed for the session and fri is system-derived.
func (f Field) Editable() bool {
	switch f {
	case FieldUserID, FieldCharacterID, FieldImageName, FieldFri:
		return false
	}
	return true
}

// Numeric reports whether the field holds an integer
func (f Field) Numeric() bool {
	switch f {
	case FieldAge, FieldHP, FieldMP, FieldVit, FieldDex, FieldAgi, FieldInte, FieldLuc, FieldFri:
		return true
	}
	return false
}
