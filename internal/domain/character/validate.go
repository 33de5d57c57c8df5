package character

import (
	"sort"
	"strings"

	dnderr "github.com/KirkDiggler/charform/internal/errors"
)

// Validate applies the form constraints to a record before it is sent.
// The record operations never call it; they store whatever value was set.
func Validate(r Record) error {
	problems := map[string]string{}

	required := map[Field]string{
		FieldUserID:      r.UserID,
		FieldName:        r.Name,
		FieldPersonality: r.Personality,
		FieldAppearance:  r.Appearance,
		FieldSetting:     r.Setting,
		FieldStory:       r.Story,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			problems[string(field)] = "required"
		}
	}

	if r.Age < 0 || r.Age > 100 {
		problems[string(FieldAge)] = "must be between 0 and 100"
	}

	for field, value := range map[Field]int{FieldHP: r.HP, FieldMP: r.MP, FieldFri: r.Fri} {
		if value < 0 {
			problems[string(field)] = "must be at least 0"
		}
	}

	abilities := map[Field]int{
		FieldVit: r.Vit, FieldDex: r.Dex, FieldAgi: r.Agi, FieldInte: r.Inte, FieldLuc: r.Luc,
	}
	for field, value := range abilities {
		if value < 1 {
			problems[string(field)] = "must be at least 1"
		}
	}

	if len(problems) == 0 {
		return nil
	}

	names := make([]string, 0, len(problems))
	for name := range problems {
		names = append(names, name)
	}
	sort.Strings(names)

	err := dnderr.Validationf("invalid fields: %s", strings.Join(names, ", "))
	for name, problem := range problems {
		err = err.WithMeta(name, problem)
	}
	return err
}
