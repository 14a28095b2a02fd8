package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

func TestProjectNormalizeDedupesTechnologies(t *testing.T) {
	project := Project{
		Title:        "  Portfolio  ",
		Category:     "web",
		Description:  "A site",
		Technologies: []string{"Go", "React", "Go", "  React  ", "SQLite"},
	}

	project.Normalize()

	assert.Equal(t, "Portfolio", project.Title)
	assert.Equal(t, []string{"Go", "React", "SQLite"}, []string(project.Technologies))
}

func TestProjectNormalizeAppliesDefaultIcon(t *testing.T) {
	project := Project{Title: "X", Category: "web", Description: "Y"}

	project.Normalize()

	assert.Equal(t, "code", project.Icon)
}

func TestProjectNormalizeKeepsExplicitIcon(t *testing.T) {
	project := Project{Title: "X", Category: "web", Description: "Y", Icon: "gamepad"}

	project.Normalize()

	assert.Equal(t, "gamepad", project.Icon)
}

func TestProjectValidateRequiresFields(t *testing.T) {
	tests := []struct {
		name    string
		project Project
	}{
		{"missing title", Project{Category: "web", Description: "Y"}},
		{"missing category", Project{Title: "X", Description: "Y"}},
		{"missing description", Project{Title: "X", Category: "web"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.project.Validate()
			require.Error(t, err)
			assert.True(t, errs.IsMissingRequiredFieldError(err))
		})
	}
}

func TestProjectValidateRejectsUnknownCategory(t *testing.T) {
	project := Project{Title: "X", Category: "desktop", Description: "Y"}

	err := project.Validate()

	require.Error(t, err)
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestProjectStamp(t *testing.T) {
	project := Project{}
	now := project.CreatedAt

	project.Stamp(now.Add(1))
	first := project.CreatedAt
	assert.False(t, project.CreatedAt.IsZero())

	project.Stamp(first.Add(1))
	assert.Equal(t, first, project.CreatedAt)
	assert.Equal(t, first.Add(1), project.UpdatedAt)
}
