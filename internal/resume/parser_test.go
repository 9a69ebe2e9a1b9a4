package resume

import (
	"reflect"
	"strings"
	"testing"
)

const sampleResume = `Jane Q Public
Email: jane.public@example.com
Phone: (512) 555-0142
Austin, TX

SUMMARY
Procurement analyst with 8 years of experience in state contracting.

SKILLS
Go, SQL, Contract Review, Vendor Management

EXPERIENCE
Senior Procurement Analyst at State of Texas
Procurement Specialist at City of Austin
`

func TestParse_Sample(t *testing.T) {
	got := Parse(sampleResume)

	if got.Name != "Jane Q Public" {
		t.Fatalf("expected name from first line, got %q", got.Name)
	}
	if got.Email != "jane.public@example.com" {
		t.Fatalf("expected email, got %q", got.Email)
	}
	if got.Phone != "(512) 555-0142" {
		t.Fatalf("expected phone, got %q", got.Phone)
	}
	if got.YearsExperience != 8 {
		t.Fatalf("expected 8 years from summary phrasing, got %d", got.YearsExperience)
	}
	want := []string{"Go", "SQL", "Contract Review", "Vendor Management"}
	if !reflect.DeepEqual(got.Skills, want) {
		t.Fatalf("expected skills %v, got %v", want, got.Skills)
	}
}

func TestExtractName_SkipsLabeledLines(t *testing.T) {
	text := "Email: someone@example.com\nJohn Smith\n"
	if got := ExtractName(text); got != "John Smith" {
		t.Fatalf("expected John Smith, got %q", got)
	}
}

func TestExtractName_RejectsLongLines(t *testing.T) {
	text := "An Overly Long Headline That Is Not A Name At All\n"
	if got := ExtractName(text); got != "" {
		t.Fatalf("expected no name, got %q", got)
	}
}

func TestExtractYearsExperience_FallbackCountsJobEntries(t *testing.T) {
	text := "EXPERIENCE\nSenior Engineer at Example Corporation\nStaff Engineer at Another Company\n\nEDUCATION\nBS Computer Science\n"
	if got := ExtractYearsExperience(text); got != 2 {
		t.Fatalf("expected 2 counted entries, got %d", got)
	}
}

func TestExtractSkills_CapsAtFifty(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("SKILLS\n")
	for i := 0; i < 80; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("skill")
	}
	sb.WriteString("\n")
	got := ExtractSkills(sb.String())
	if len(got) != 50 {
		t.Fatalf("expected 50 skills, got %d", len(got))
	}
}

func TestParse_TotalOverGarbage(t *testing.T) {
	for _, text := range []string{"", "\n\n\n", "###", strings.Repeat("x", 10000)} {
		got := Parse(text)
		if got.Email != "" || got.Phone != "" || got.YearsExperience != 0 {
			t.Fatalf("expected zero values for %q prefix, got %+v", text[:min(8, len(text))], got)
		}
	}
}
