// Package resume extracts structured candidate data from plain resume text.
// All extractors are best-effort heuristics: they return zero values rather
// than errors when a field cannot be found.
package resume

import (
	"regexp"
	"strconv"
	"strings"
)

// Parsed is the structured view of one resume.
type Parsed struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	YearsExperience int      `json:"years_experience"`
	Skills          []string `json:"skills"`
}

const maxSkills = 50

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\d{3}[-.\s]\d{3}[-.\s]\d{4}`),
		regexp.MustCompile(`\+1[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
	}

	yearsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*in`),
		regexp.MustCompile(`(?i)experience[:\s]+(\d+)\+?\s*years?`),
	}

	sectionHeaderRe = regexp.MustCompile(`(?im)^(summary|objective|experience|work experience|professional experience|employment|education|skills|technical skills|core competencies|key skills|certifications|projects|awards|references)\s*:?\s*$`)

	jobEntryRe = regexp.MustCompile(`^[A-Z][^•]{10,}`)
)

// Parse runs every extractor over the text. Total over arbitrary input.
func Parse(text string) Parsed {
	return Parsed{
		Name:            ExtractName(text),
		Email:           ExtractEmail(text),
		Phone:           ExtractPhone(text),
		YearsExperience: ExtractYearsExperience(text),
		Skills:          ExtractSkills(text),
	}
}

// ExtractEmail returns the first email address in the text.
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractPhone returns the first match of the common US phone formats.
func ExtractPhone(text string) string {
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// ExtractName scans the first few lines for something shaped like a person's
// name: 2-4 words that are not a labeled field or section header.
func ExtractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || looksLikeField(line) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 && len(parts) <= 4 {
			return strings.Join(parts, " ")
		}
	}
	return ""
}

func looksLikeField(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range []string{"email:", "phone:", "address:", "summary:", "objective:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return sectionHeaderRe.MatchString(line)
}

// ExtractYearsExperience looks for "N years [of] experience" phrasing first,
// then falls back to counting job-title-shaped lines under an experience
// section, capped at 30.
func ExtractYearsExperience(text string) int {
	for _, re := range yearsRes {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}

	section := extractSection(text, []string{"experience", "work experience", "professional experience", "employment"})
	if section == "" {
		return 0
	}
	count := 0
	for _, line := range strings.Split(section, "\n") {
		if jobEntryRe.MatchString(strings.TrimSpace(line)) {
			count++
		}
	}
	if count > 30 {
		count = 30
	}
	return count
}

// ExtractSkills pulls the skills section and splits it on the first delimiter
// that appears, keeping at most maxSkills entries.
func ExtractSkills(text string) []string {
	section := extractSection(text, []string{"skills", "technical skills", "core competencies", "key skills"})
	if section == "" {
		return nil
	}

	var raw []string
	for _, delim := range []string{",", "•", "|", "\n"} {
		if strings.Contains(section, delim) {
			raw = strings.Split(section, delim)
			break
		}
	}
	if raw == nil {
		raw = []string{section}
	}

	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(strings.Trim(s, "-•* \t"))
		if s == "" || len(s) > 60 {
			continue
		}
		skills = append(skills, s)
		if len(skills) == maxSkills {
			break
		}
	}
	if len(skills) == 0 {
		return nil
	}
	return skills
}

// extractSection returns the text between a matching section header and the
// next header (or end of input).
func extractSection(text string, names []string) string {
	for _, name := range names {
		re := regexp.MustCompile(`(?im)^` + regexp.QuoteMeta(name) + `\s*:?\s*$`)
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		rest := text[loc[1]:]
		if next := sectionHeaderRe.FindStringIndex(rest); next != nil {
			rest = rest[:next[0]]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}
