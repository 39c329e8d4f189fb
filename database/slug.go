package database

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/gosimple/unidecode"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const fallbackSlug = "item"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify strips diacritics, transliterates the rest to ASCII (ß -> ss,
// Привет -> Privet), lowercases and collapses every run of other characters
// into a single hyphen. It never returns an empty string.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	ascii := unidecode.Unidecode(stripped)

	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(ascii), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// ResolveSlug returns a slug that is free in table, ignoring the row excludeID.
// An explicit slug is used verbatim, and rejected when it is not already in
// Slugify form or is taken. Otherwise the title is slugified and suffixed
// -1, -2, ... until free.
func ResolveSlug(tx *gorm.DB, table, title, explicit string, excludeID uuid.UUID) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		if Slugify(explicit) != explicit {
			return "", errs.NewFieldValidationError("slug", "must be lowercase letters, digits and single hyphens")
		}
		taken, err := slugTaken(tx, table, explicit, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", errs.NewUniquenessConflictError(table, "slug", explicit)
		}
		return explicit, nil
	}

	base := Slugify(title)
	candidate := base
	for n := 1; ; n++ {
		taken, err := slugTaken(tx, table, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

// AssignSlug is the before-save step for slugged entities. previousSource is
// nil on create. On update the slug only follows the new title when it was
// derived from the old one and no explicit slug was supplied.
func AssignSlug(tx *gorm.DB, entity models.Sluggable, explicit string, previousSource *string) error {
	if previousSource != nil && strings.TrimSpace(explicit) == "" {
		current := entity.CurrentSlug()
		titleChanged := entity.SlugSource() != *previousSource
		if current != "" && (!titleChanged || !slugDerivedFrom(current, *previousSource)) {
			return nil
		}
	}

	slug, err := ResolveSlug(tx, entity.TableName(), entity.SlugSource(), explicit, entity.PrimaryID())
	if err != nil {
		return err
	}
	entity.SetSlug(slug)
	return nil
}

// slugDerivedFrom reports whether slug is Slugify(title) or Slugify(title)-N
func slugDerivedFrom(slug, title string) bool {
	base := Slugify(title)
	if slug == base {
		return true
	}
	suffix, ok := strings.CutPrefix(slug, base+"-")
	if !ok || suffix == "" {
		return false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func slugTaken(tx *gorm.DB, table, slug string, excludeID uuid.UUID) (bool, error) {
	query := tx.Table(table).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errs.NewDatabaseError("resolve slug", table, err)
	}
	return count > 0, nil
}
