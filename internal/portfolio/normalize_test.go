package portfolio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecord_MissingListsBecomeEmpty(t *testing.T) {
	doc := FromRecord(types.ResumeRecord{RawText: "hello"})

	assert.NotNil(t, doc.Skills)
	assert.NotNil(t, doc.WorkExperience)
	assert.NotNil(t, doc.Projects)
	assert.NotNil(t, doc.Education)
	assert.Equal(t, "hello", doc.Bio)
}

func TestFromRecord_NormalizesFields(t *testing.T) {
	record := types.ResumeRecord{
		Personal: types.Personal{Name: strPtr(" Grace Hopper "), Email: strPtr(""), Location: strPtr("  ")},
		Skills:   []string{"COBOL", " cobol", "", "Compilers"},
		WorkExperience: []types.WorkExperience{
			{JobTitle: "Rear Admiral", Employer: "US Navy", StartDate: "1943", EndDate: strPtr("")},
			{JobTitle: "Programmer", Employer: "Eckert-Mauchly", StartDate: "1949", EndDate: strPtr("1952")},
		},
		Projects:  []types.Project{{Title: "A-0", TechStack: strPtr(" ")}},
		Education: []types.Education{{Institution: "Yale", Degree: "PhD", GPA: strPtr("")}},
	}

	doc := FromRecord(record)

	assert.Equal(t, "Grace Hopper", types.Deref(doc.Personal.Name))
	assert.Nil(t, doc.Personal.Email)
	assert.Nil(t, doc.Personal.Location)
	assert.Equal(t, []string{"COBOL", "Compilers"}, doc.Skills)

	require.Len(t, doc.WorkExperience, 2)
	assert.Equal(t, "Rear Admiral", doc.WorkExperience[0].JobTitle, "parser order is preserved")
	assert.Nil(t, doc.WorkExperience[0].EndDate)
	assert.Equal(t, "1952", types.Deref(doc.WorkExperience[1].EndDate))
	assert.Nil(t, doc.Projects[0].TechStack)
	assert.Nil(t, doc.Education[0].GPA)

	ids := map[string]bool{}
	for _, e := range doc.WorkExperience {
		assert.NotEmpty(t, e.ID)
		ids[e.ID] = true
	}
	assert.Len(t, ids, 2)
}

func TestNormalize_DropsNilEntriesAndKeepsIDs(t *testing.T) {
	in := types.ResumeDocument{
		WorkExperience: []*types.WorkExperience{nil, {ID: "keep", JobTitle: "Dev"}},
	}

	out := Normalize(in)

	require.Len(t, out.WorkExperience, 1)
	assert.Equal(t, "keep", out.WorkExperience[0].ID)
	assert.NotNil(t, out.Skills)
	assert.NotNil(t, out.Projects)
	assert.NotNil(t, out.Education)
	assert.Len(t, in.WorkExperience, 2, "input is not modified")
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize(sampleDocument())
	twice := Normalize(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Normalize not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" Go", "go ", "GO", "Docker", "", "docker"})
	assert.Equal(t, []string{"Go", "Docker"}, got)
	assert.NotNil(t, NormalizeSkills(nil))
}

func TestNormalize_RepeatedIDsAreReplaced(t *testing.T) {
	in := types.ResumeDocument{
		WorkExperience: []*types.WorkExperience{
			{ID: "dup", Description: "first"},
			{ID: "dup", Description: "second"},
			{ID: "  ", Description: "blank"},
		},
		Projects:  []*types.Project{{ID: "dup", Title: "Engine"}},
		Education: []*types.Education{{ID: " edu ", Degree: "BSc"}},
	}

	out := Normalize(in)

	ids := map[string]bool{}
	for _, e := range out.WorkExperience {
		ids[e.ID] = true
	}
	ids[out.Projects[0].ID] = true
	ids[out.Education[0].ID] = true

	assert.Len(t, ids, 5, "every entry has its own id")
	assert.Equal(t, "dup", out.WorkExperience[0].ID, "the first holder keeps its id")
	assert.Equal(t, "edu", out.Education[0].ID)
	assert.Equal(t, "dup", in.WorkExperience[1].ID, "input is not modified")

	assert.Equal(t, 1, IndexOf(out, ListWorkExperience, out.WorkExperience[1].ID))
}

func TestFromRecord_RepeatedIDsAreReplaced(t *testing.T) {
	doc := FromRecord(types.ResumeRecord{
		Projects: []types.Project{{ID: "p"}, {ID: "p"}},
	})
	assert.NotEqual(t, doc.Projects[0].ID, doc.Projects[1].ID)
}

func TestNormalizeSkills_FoldingMatchesAddSkill(t *testing.T) {
	got := NormalizeSkills([]string{"ς", "σ", "Σ"})
	assert.Equal(t, []string{"ς"}, got)

	doc := types.ResumeDocument{Skills: got}
	_, added := AddSkill(doc, "σ")
	assert.False(t, added)
	assert.True(t, HasSkill(doc, "Σ"))
}
