package character

import (
	"strings"
	"time"

	dnderr "github.com/KirkDiggler/charform/internal/errors"
)

// Category is the enemy/ally classification that seeds identifier derivation
type Category int

const (
	// CategoryUnset means no selection has been made yet
	CategoryUnset Category = iota
	// CategoryEnemy marks an opponent
	CategoryEnemy
	// CategoryFixed marks an ally
	CategoryFixed
)

const (
	timestampLayout = "20060102150405"
	identifierSeq   = "01"
)

// Token returns the identifier prefix for the category
func (c Category) Token() string {
	switch c {
	case CategoryEnemy:
		return "enemy"
	case CategoryFixed:
		return "fixed"
	}
	return ""
}

func (c Category) String() string {
	if c == CategoryUnset {
		return "unset"
	}
	return c.Token()
}

// ParseCategory accepts tokens as well as the radio values the form sends
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enemy", "true":
		return CategoryEnemy, nil
	case "fixed", "ally", "false":
		return CategoryFixed, nil
	}
	return CategoryUnset, dnderr.InvalidArgumentf("unknown category '%s'", s)
}

// FormatTimestamp renders t as YYYYMMDDHHMMSS in t's own location
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// ImageExtension picks the stored image extension for an uploaded filename.
// jpg wins when present, anything else falls back to png.
func ImageExtension(filename string) string {
	if strings.Contains(filename, "jpg") {
		return "jpg"
	}
	return "png"
}

// DeriveIdentifiers stamps a fresh character id and image name onto r.
// Both are always produced together from the same {category}_{timestamp} prefix;
// no other field changes.
func DeriveIdentifiers(r Record, category Category, now time.Time, uploadedFilename string) (Record, error) {
	token := category.Token()
	if token == "" {
		return r, dnderr.InvalidArgument("category must be resolved before deriving identifiers")
	}

	id := token + "_" + FormatTimestamp(now) + "_" + identifierSeq

	next := r
	next.CharacterID = id
	next.ImageName = id + "." + ImageExtension(uploadedFilename)
	return next, nil
}
