package syncer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/localcache"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type categoryRemote = fakeRemote[models.SkillCategory, *models.SkillCategory]
type skillRemote = fakeRemote[models.Skill, *models.Skill]
type messageRemote = fakeRemote[models.ContactMessage, *models.ContactMessage]

type testWorkspace struct {
	workspace  *Workspace
	projects   *projectRemote
	categories *categoryRemote
	skills     *skillRemote
	messages   *messageRemote
	cache      *localcache.Store
}

func newTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()

	cache := newTestStore(t)
	tw := &testWorkspace{
		projects:   &projectRemote{},
		categories: &categoryRemote{},
		skills:     &skillRemote{},
		messages:   &messageRemote{},
		cache:      cache,
	}
	tw.workspace = &Workspace{
		Projects:   NewController[models.Project](KindProjects, tw.projects, cache),
		Categories: NewController[models.SkillCategory](KindCategories, tw.categories, cache),
		Skills:     NewController[models.Skill](KindSkills, tw.skills, cache),
		Messages:   NewController[models.ContactMessage](KindMessages, tw.messages, cache),
	}
	return tw
}

func (tw *testWorkspace) setDown(down bool) {
	tw.projects.down = down
	tw.categories.down = down
	tw.skills.down = down
	tw.messages.down = down
}

func (tw *testWorkspace) addCategory(t *testing.T, name string) uuid.UUID {
	t.Helper()

	category := models.SkillCategory{Name: name, Description: "d", Icon: "i"}
	created, _, err := tw.workspace.Categories.Create(context.Background(), &category)
	require.NoError(t, err)
	return created.ID
}

func (tw *testWorkspace) addSkill(t *testing.T, name string, categoryID uuid.UUID) uuid.UUID {
	t.Helper()

	skill := models.Skill{Name: name, CategoryID: categoryID, Icon: "i", Percent: 50}
	created, _, err := tw.workspace.Skills.Create(context.Background(), &skill)
	require.NoError(t, err)
	return created.ID
}

func TestWorkspaceRefreshReportsPerCollectionSources(t *testing.T) {
	tw := newTestWorkspace(t)
	tw.skills.down = true

	res, err := tw.workspace.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SourceRemote, res.Projects)
	assert.Equal(t, SourceRemote, res.Categories)
	assert.Equal(t, SourceFallback, res.Skills)
	assert.Equal(t, SourceRemote, res.Messages)
}

func TestDeleteSkillCategoryCascadesRemotely(t *testing.T) {
	tw := newTestWorkspace(t)

	doomed := tw.addCategory(t, "Backend")
	kept := tw.addCategory(t, "Frontend")
	tw.addSkill(t, "Go", doomed)
	tw.addSkill(t, "Postgres", doomed)
	survivor := tw.addSkill(t, "React", kept)

	src, err := tw.workspace.DeleteSkillCategory(context.Background(), doomed)

	require.NoError(t, err)
	assert.Equal(t, SourceRemote, src)

	categories := tw.workspace.Categories.List()
	require.Len(t, categories, 1)
	assert.Equal(t, kept, categories[0].ID)

	skills := tw.workspace.Skills.List()
	require.Len(t, skills, 1)
	assert.Equal(t, survivor, skills[0].ID)
}

func TestDeleteSkillCategoryCascadesInFallback(t *testing.T) {
	tw := newTestWorkspace(t)
	tw.setDown(true)

	doomed := tw.addCategory(t, "Backend")
	kept := tw.addCategory(t, "Frontend")
	tw.addSkill(t, "Go", doomed)
	tw.addSkill(t, "Postgres", doomed)
	tw.addSkill(t, "Docker", doomed)
	survivor := tw.addSkill(t, "React", kept)

	src, err := tw.workspace.DeleteSkillCategory(context.Background(), doomed)

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)

	skills := tw.workspace.Skills.List()
	require.Len(t, skills, 1)
	assert.Equal(t, survivor, skills[0].ID)

	cachedSkills, ok, err := localcache.LoadRecords[models.Skill](tw.cache, KindSkills)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cachedSkills, 1, "skill cache must mirror the pruned working set")
	assert.Equal(t, survivor, cachedSkills[0].ID)

	cachedCategories, _, err := localcache.LoadRecords[models.SkillCategory](tw.cache, KindCategories)
	require.NoError(t, err)
	require.Len(t, cachedCategories, 1)
	assert.Equal(t, kept, cachedCategories[0].ID)
}

func TestDeleteSkillCategoryWithoutSkillsIsNoOpForSkills(t *testing.T) {
	tw := newTestWorkspace(t)
	tw.setDown(true)

	empty := tw.addCategory(t, "Empty")
	other := tw.addCategory(t, "Other")
	skill := tw.addSkill(t, "Go", other)

	src, err := tw.workspace.DeleteSkillCategory(context.Background(), empty)

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)

	skills := tw.workspace.Skills.List()
	require.Len(t, skills, 1)
	assert.Equal(t, skill, skills[0].ID)
}

func TestFallbackRecordsSurviveReload(t *testing.T) {
	tw := newTestWorkspace(t)
	tw.setDown(true)

	project := models.Project{Title: "X", Category: "web", Description: "Y"}
	created, src, err := tw.workspace.Projects.Create(context.Background(), &project)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)

	// A fresh workspace over the same cache simulates a reload.
	reloaded := &Workspace{
		Projects: NewController[models.Project](KindProjects, tw.projects, tw.cache),
	}
	listSrc, err := reloaded.Projects.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, listSrc)

	records := reloaded.Projects.List()
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].ID)
	assert.Equal(t, "X", records[0].Title)
}
