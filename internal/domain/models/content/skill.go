package content

// SkillCategory groups skills on the skills section.
type SkillCategory string

const (
	CategoryFramework   SkillCategory = "framework"
	CategoryLanguage    SkillCategory = "language"
	CategoryUI          SkillCategory = "ui"
	CategoryTool        SkillCategory = "tool"
	CategoryBackend     SkillCategory = "backend"
	CategoryRuntime     SkillCategory = "runtime"
	CategoryMethodology SkillCategory = "methodology"
)

// SkillCategories is the fixed set of accepted categories.
var SkillCategories = []SkillCategory{
	CategoryFramework,
	CategoryLanguage,
	CategoryUI,
	CategoryTool,
	CategoryBackend,
	CategoryRuntime,
	CategoryMethodology,
}

// Valid reports whether c is one of SkillCategories.
func (c SkillCategory) Valid() bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// FilterSkills returns the skills in category, preserving order.
// An empty category returns every skill.
func FilterSkills(skills []Skill, category SkillCategory) []Skill {
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if category == "" || s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// SkillCategories returns the distinct categories used by the document in
// first-appearance order.
func (d *Document) SkillCategories() []SkillCategory {
	seen := make(map[SkillCategory]bool)
	out := []SkillCategory{}
	for _, s := range d.Skills {
		if seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		out = append(out, s.Category)
	}
	return out
}
