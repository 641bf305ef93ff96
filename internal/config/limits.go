package config

const (
	// MinSkillLevel and MaxSkillLevel bound a skill's self-assessed level.
	MinSkillLevel = 1
	MaxSkillLevel = 10

	// MaxNameLength is the maximum length for short single-line fields
	// (names, companies, titles, periods).
	MaxNameLength = 255

	// MaxTextLength is the maximum length for paragraph fields
	// (about, descriptions, highlights).
	MaxTextLength = 5000

	// MaxListLength caps every list in the document. A CV with more than
	// this many skills or projects is almost certainly a client bug.
	MaxListLength = 200

	// MaxContentBytes is the largest accepted content request body.
	MaxContentBytes = 1 << 20

	// MinTeamSize is the smallest valid project team.
	MinTeamSize = 1
)
