package augment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "bio", Bio().String())
	assert.Equal(t, "workExperience[2]", WorkExperience(2).String())
	assert.Equal(t, "project[0]", Project(0).String())
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want Target
	}{
		{"bio", Bio()},
		{" BIO ", Bio()},
		{"workExperience[2]", WorkExperience(2)},
		{"work_experience:1", WorkExperience(1)},
		{"project[0]", Project(0)},
		{"projects:3", Project(3)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTarget_RoundTrip(t *testing.T) {
	for _, target := range []Target{Bio(), WorkExperience(4), Project(7)} {
		got, err := ParseTarget(target.String())
		require.NoError(t, err)
		assert.Equal(t, target, got)
	}
}

func TestParseTarget_Invalid(t *testing.T) {
	for _, in := range []string{"", "education[0]", "skills[1]", "project[-1]", "project[x]", "project"} {
		_, err := ParseTarget(in)
		var invalid *InvalidTargetError
		assert.ErrorAs(t, err, &invalid, in)
	}
}
