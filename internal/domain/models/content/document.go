package content

// Locale identifies one of the two authored languages.
type Locale string

const (
	LocaleVI Locale = "vi"
	LocaleEN Locale = "en"
)

// Locales lists the supported locales in display order.
var Locales = []Locale{LocaleVI, LocaleEN}

// ParseLocale returns the locale for s, or ok=false if s is not supported.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(s) {
	case LocaleVI, LocaleEN:
		return Locale(s), true
	}
	return "", false
}

// Localized is a bilingual string keyed by locale code.
type Localized map[Locale]string

// Get returns the value for locale, falling back to any other non-empty value.
func (l Localized) Get(locale Locale) string {
	if v := l[locale]; v != "" {
		return v
	}
	for _, other := range Locales {
		if v := l[other]; v != "" {
			return v
		}
	}
	return ""
}

// LocalizedList is a bilingual ordered list keyed by locale code.
type LocalizedList map[Locale][]string

// Document is the whole CV: the single record persisted by the content store.
// Field order and JSON keys match the stored file layout.
type Document struct {
	Personal   Personal     `json:"personal" yaml:"personal"`
	Stats      Stats        `json:"stats" yaml:"stats"`
	About      Localized    `json:"about" yaml:"about"`
	Skills     []Skill      `json:"skills" yaml:"skills"`
	Experience []Experience `json:"experience" yaml:"experience"`
	Projects   []Project    `json:"projects" yaml:"projects"`
	Education  []Education  `json:"education" yaml:"education"`
	Languages  []Language   `json:"languages" yaml:"languages"`
}

type Personal struct {
	Name        Localized `json:"name" yaml:"name"`
	Title       Localized `json:"title" yaml:"title"`
	YearOfBirth int       `json:"yearOfBirth,omitempty" yaml:"yearOfBirth"`
	Location    string    `json:"location,omitempty" yaml:"location"`
	Email       string    `json:"email" yaml:"email"`
	Github      string    `json:"github" yaml:"github"`
	Linkedin    string    `json:"linkedin" yaml:"linkedin"`
}

// Stats are display counters. They are authored by hand and are not
// reconciled with the experience or project lists.
type Stats struct {
	YearsOfExperience int `json:"yearsOfExperience" yaml:"yearsOfExperience"`
	ProjectsCompleted int `json:"projectsCompleted" yaml:"projectsCompleted"`
	CompaniesWorked   int `json:"companiesWorked" yaml:"companiesWorked"`
	MaxTeamSize       int `json:"maxTeamSize" yaml:"maxTeamSize"`
}

type Skill struct {
	Name     string        `json:"name" yaml:"name"`
	Level    int           `json:"level" yaml:"level"`
	Category SkillCategory `json:"category" yaml:"category"`
}

// Experience is one job. EndDate is nil for an ongoing position; IsCurrent is
// stored as authored and is not derived from EndDate.
type Experience struct {
	Company     string    `json:"company" yaml:"company"`
	Role        Localized `json:"role" yaml:"role"`
	StartDate   string    `json:"startDate" yaml:"startDate"`
	EndDate     *string   `json:"endDate" yaml:"endDate"`
	IsCurrent   bool      `json:"isCurrent" yaml:"isCurrent"`
	Description Localized `json:"description" yaml:"description"`
}

type Project struct {
	Name         string        `json:"name" yaml:"name"`
	Period       string        `json:"period" yaml:"period"`
	Description  Localized     `json:"description" yaml:"description"`
	Role         Localized     `json:"role" yaml:"role"`
	TeamSize     int           `json:"teamSize" yaml:"teamSize"`
	Technologies []string      `json:"technologies" yaml:"technologies"`
	Highlights   LocalizedList `json:"highlights" yaml:"highlights"`
}

type Education struct {
	School Localized `json:"school" yaml:"school"`
	Degree Localized `json:"degree" yaml:"degree"`
	Period string    `json:"period" yaml:"period"`
}

type Language struct {
	Name  Localized `json:"name" yaml:"name"`
	Level Localized `json:"level" yaml:"level"`
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Personal: d.Personal,
		Stats:    d.Stats,
		About:    cloneLocalized(d.About),
	}
	out.Personal.Name = cloneLocalized(d.Personal.Name)
	out.Personal.Title = cloneLocalized(d.Personal.Title)

	if d.Skills != nil {
		out.Skills = append([]Skill{}, d.Skills...)
	}
	if d.Experience != nil {
		out.Experience = make([]Experience, len(d.Experience))
		for i, e := range d.Experience {
			e.Role = cloneLocalized(e.Role)
			e.Description = cloneLocalized(e.Description)
			if e.EndDate != nil {
				end := *e.EndDate
				e.EndDate = &end
			}
			out.Experience[i] = e
		}
	}
	if d.Projects != nil {
		out.Projects = make([]Project, len(d.Projects))
		for i, p := range d.Projects {
			p.Description = cloneLocalized(p.Description)
			p.Role = cloneLocalized(p.Role)
			if p.Technologies != nil {
				p.Technologies = append([]string{}, p.Technologies...)
			}
			if p.Highlights != nil {
				h := make(LocalizedList, len(p.Highlights))
				for k, v := range p.Highlights {
					if v != nil {
						v = append([]string{}, v...)
					}
					h[k] = v
				}
				p.Highlights = h
			}
			out.Projects[i] = p
		}
	}
	if d.Education != nil {
		out.Education = make([]Education, len(d.Education))
		for i, e := range d.Education {
			e.School = cloneLocalized(e.School)
			e.Degree = cloneLocalized(e.Degree)
			out.Education[i] = e
		}
	}
	if d.Languages != nil {
		out.Languages = make([]Language, len(d.Languages))
		for i, l := range d.Languages {
			l.Name = cloneLocalized(l.Name)
			l.Level = cloneLocalized(l.Level)
			out.Languages[i] = l
		}
	}
	return out
}

func cloneLocalized(l Localized) Localized {
	if l == nil {
		return nil
	}
	out := make(Localized, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
