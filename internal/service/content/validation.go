package content

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/content"
)

// minYearOfBirth bounds personal.yearOfBirth from below.
const minYearOfBirth = 1900

// documentValidator applies field rules to a decoded document. Shape and
// types are already checked by the JSON Schema; these rules cover content.
type documentValidator struct {
	markup *MarkupDetector
	now    func() time.Time
}

func newDocumentValidator(now func() time.Time) *documentValidator {
	return &documentValidator{
		markup: NewMarkupDetector(),
		now:    now,
	}
}

// Validate returns a *domain.ValidationError listing every rejected field.
func (v *documentValidator) Validate(doc *models.Document) error {
	err := validation.ValidateStruct(doc,
		validation.Field(&doc.Personal, validation.By(v.validatePersonal)),
		validation.Field(&doc.Stats, validation.By(validateStats)),
		validation.Field(&doc.About, validation.By(v.localized(config.MaxTextLength, false))),
		validation.Field(&doc.Skills,
			validation.Length(0, config.MaxListLength),
			validation.Each(validation.By(v.validateSkill)),
		),
		validation.Field(&doc.Experience,
			validation.Length(0, config.MaxListLength),
			validation.Each(validation.By(v.validateExperience)),
		),
		validation.Field(&doc.Projects,
			validation.Length(0, config.MaxListLength),
			validation.Each(validation.By(v.validateProject)),
		),
		validation.Field(&doc.Education,
			validation.Length(0, config.MaxListLength),
			validation.Each(validation.By(v.validateEducation)),
		),
		validation.Field(&doc.Languages,
			validation.Length(0, config.MaxListLength),
			validation.Each(validation.By(v.validateLanguage)),
		),
	)
	return toValidationError(err)
}

func (v *documentValidator) validatePersonal(value interface{}) error {
	p, ok := value.(models.Personal)
	if !ok {
		return errors.New("invalid personal section")
	}
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.By(v.localized(config.MaxNameLength, true))),
		validation.Field(&p.Title, validation.By(v.localized(config.MaxNameLength, true))),
		validation.Field(&p.YearOfBirth, validation.Min(minYearOfBirth), validation.Max(v.now().Year())),
		validation.Field(&p.Location, validation.RuneLength(0, config.MaxNameLength), validation.By(v.markup.Rule)),
		validation.Field(&p.Email, validation.Required, is.EmailFormat),
		validation.Field(&p.Github, validation.RuneLength(0, config.MaxNameLength), is.URL),
		validation.Field(&p.Linkedin, validation.RuneLength(0, config.MaxNameLength), is.URL),
	)
}

func validateStats(value interface{}) error {
	s, ok := value.(models.Stats)
	if !ok {
		return errors.New("invalid stats section")
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.YearsOfExperience, validation.Min(0)),
		validation.Field(&s.ProjectsCompleted, validation.Min(0)),
		validation.Field(&s.CompaniesWorked, validation.Min(0)),
		validation.Field(&s.MaxTeamSize, validation.Min(0)),
	)
}

func (v *documentValidator) validateSkill(value interface{}) error {
	s, ok := value.(models.Skill)
	if !ok {
		return errors.New("invalid skill entry")
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name,
			validation.Required,
			validation.RuneLength(1, config.MaxNameLength),
			validation.By(v.markup.Rule),
		),
		validation.Field(&s.Level,
			validation.Required,
			validation.Min(config.MinSkillLevel),
			validation.Max(config.MaxSkillLevel),
		),
		validation.Field(&s.Category, validation.Required, validation.In(skillCategoryValues()...)),
	)
}

func (v *documentValidator) validateExperience(value interface{}) error {
	e, ok := value.(models.Experience)
	if !ok {
		return errors.New("invalid experience entry")
	}
	return validation.ValidateStruct(&e,
		validation.Field(&e.Company,
			validation.Required,
			validation.RuneLength(1, config.MaxNameLength),
			validation.By(v.markup.Rule),
		),
		validation.Field(&e.Role, validation.By(v.localized(config.MaxNameLength, true))),
		validation.Field(&e.StartDate, validation.Required, validation.Date(models.DateLayout)),
		validation.Field(&e.EndDate,
			validation.NilOrNotEmpty,
			validation.Date(models.DateLayout),
			validation.By(notBefore(e.StartDate)),
		),
		validation.Field(&e.Description, validation.By(v.localized(config.MaxTextLength, false))),
	)
}

func (v *documentValidator) validateProject(value interface{}) error {
	p, ok := value.(models.Project)
	if !ok {
		return errors.New("invalid project entry")
	}
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name,
			validation.Required,
			validation.RuneLength(1, config.MaxNameLength),
			validation.By(v.markup.Rule),
		),
		validation.Field(&p.Period, validation.RuneLength(0, config.MaxNameLength), validation.By(v.markup.Rule)),
		validation.Field(&p.Description, validation.By(v.localized(config.MaxTextLength, false))),
		validation.Field(&p.Role, validation.By(v.localized(config.MaxNameLength, true))),
		validation.Field(&p.TeamSize, validation.Required, validation.Min(config.MinTeamSize)),
		validation.Field(&p.Technologies,
			validation.Length(0, config.MaxListLength),
			validation.Each(
				validation.Required,
				validation.RuneLength(1, config.MaxNameLength),
				validation.By(v.markup.Rule),
			),
		),
		validation.Field(&p.Highlights, validation.By(v.localizedList)),
	)
}

func (v *documentValidator) validateEducation(value interface{}) error {
	e, ok := value.(models.Education)
	if !ok {
		return errors.New("invalid education entry")
	}
	return validation.ValidateStruct(&e,
		validation.Field(&e.School, validation.By(v.localized(config.MaxNameLength, true))),
		validation.Field(&e.Degree, validation.By(v.localized(config.MaxNameLength, true))),
		validation.Field(&e.Period, validation.RuneLength(0, config.MaxNameLength), validation.By(v.markup.Rule)),
	)
}

func (v *documentValidator) validateLanguage(value interface{}) error {
	l, ok := value.(models.Language)
	if !ok {
		return errors.New("invalid language entry")
	}
	return validation.ValidateStruct(&l,
		validation.Field(&l.Name, validation.By(v.localized(config.MaxNameLength, true))),
		validation.Field(&l.Level, validation.By(v.localized(config.MaxNameLength, true))),
	)
}

// localized checks each locale of a bilingual string. Errors are keyed by
// locale code so the field path reads e.g. "about.en".
func (v *documentValidator) localized(maxLength int, required bool) validation.RuleFunc {
	return func(value interface{}) error {
		l, _ := value.(models.Localized)
		errs := validation.Errors{}
		for _, locale := range models.Locales {
			s := l[locale]
			switch {
			case required && strings.TrimSpace(s) == "":
				errs[string(locale)] = errors.New("cannot be blank")
			case utf8.RuneCountInString(s) > maxLength:
				errs[string(locale)] = fmt.Errorf("the length must be no more than %d", maxLength)
			case v.markup.HasMarkup(s):
				errs[string(locale)] = errMarkup
			}
		}
		return errs.Filter()
	}
}

func (v *documentValidator) localizedList(value interface{}) error {
	l, _ := value.(models.LocalizedList)
	errs := validation.Errors{}
	for _, locale := range models.Locales {
		err := validation.Validate(l[locale],
			validation.Length(0, config.MaxListLength),
			validation.Each(
				validation.Required,
				validation.RuneLength(1, config.MaxTextLength),
				validation.By(v.markup.Rule),
			),
		)
		if err != nil {
			errs[string(locale)] = err
		}
	}
	return errs.Filter()
}

// notBefore rejects an end month earlier than start. Malformed dates are
// reported by the Date rules.
func notBefore(start string) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(*string)
		if end == nil || *end == "" {
			return nil
		}
		from, err := models.ParseMonth(start)
		if err != nil {
			return nil
		}
		to, err := models.ParseMonth(*end)
		if err != nil {
			return nil
		}
		if to.Before(from) {
			return errors.New("must not be before startDate")
		}
		return nil
	}
}

func skillCategoryValues() []interface{} {
	values := make([]interface{}, len(models.SkillCategories))
	for i, c := range models.SkillCategories {
		values[i] = c
	}
	return values
}

// toValidationError flattens nested ozzo errors into dotted field paths.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return fmt.Errorf("validate content: %w", err)
	}

	fields := make(map[string]string)
	flattenErrors("", err, fields)
	return &domain.ValidationError{
		Message: "content failed validation",
		Fields:  fields,
	}
}

func flattenErrors(prefix string, err error, out map[string]string) {
	if errs, ok := err.(validation.Errors); ok {
		for key, e := range errs {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flattenErrors(path, e, out)
		}
		return
	}
	if prefix == "" {
		prefix = "(root)"
	}
	out[prefix] = err.Error()
}
