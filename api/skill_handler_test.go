package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/models"
)

func createTestCategory(t *testing.T, router http.Handler, token, name string) models.SkillCategory {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/skills/categories", map[string]interface{}{
		"name": name, "description": "d", "icon": "server", "order": 1,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var category models.SkillCategory
	decodeBody(t, rec, &category)
	return category
}

func createTestSkill(t *testing.T, router http.Handler, token, name string, categoryID uuid.UUID, percent int) models.Skill {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/skills", map[string]interface{}{
		"name": name, "categoryId": categoryID, "icon": "gopher", "percent": percent,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var skill models.Skill
	decodeBody(t, rec, &skill)
	return skill
}

func TestCreateSkillClampsPercent(t *testing.T) {
	router, d := setupTest(t)
	token := adminToken(t, d)
	category := createTestCategory(t, router, token, "Backend")

	tests := []struct {
		name string
		in   int
		want int
	}{
		{"above range", 150, 100},
		{"below range", -5, 0},
		{"in range", 70, 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			skill := createTestSkill(t, router, token, "Go "+tc.name, category.ID, tc.in)
			assert.Equal(t, tc.want, skill.Percent)
		})
	}
}

func TestCreateSkillEmbedsCategory(t *testing.T) {
	router, d := setupTest(t)
	token := adminToken(t, d)
	category := createTestCategory(t, router, token, "Backend")

	skill := createTestSkill(t, router, token, "Go", category.ID, 90)

	require.NotNil(t, skill.Category)
	assert.Equal(t, "Backend", skill.Category.Name)
}

func TestUpdateSkillClampsPercentAndKeepsID(t *testing.T) {
	router, d := setupTest(t)
	token := adminToken(t, d)
	category := createTestCategory(t, router, token, "Backend")
	skill := createTestSkill(t, router, token, "Go", category.ID, 50)

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/skills/%s", skill.ID), map[string]interface{}{
		"name": "Go", "categoryId": category.ID, "icon": "gopher", "percent": 130,
	}, token)

	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Skill
	decodeBody(t, rec, &updated)
	assert.Equal(t, skill.ID, updated.ID)
	assert.Equal(t, 100, updated.Percent)
}

func TestDeleteCategoryCascadesToSkills(t *testing.T) {
	router, d := setupTest(t)
	token := adminToken(t, d)

	doomed := createTestCategory(t, router, token, "Backend")
	kept := createTestCategory(t, router, token, "Frontend")
	createTestSkill(t, router, token, "Go", doomed.ID, 90)
	createTestSkill(t, router, token, "Postgres", doomed.ID, 80)
	survivor := createTestSkill(t, router, token, "React", kept.ID, 70)

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/skills/categories/%s", doomed.ID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Category and related skills deleted successfully", body["message"])

	list := doJSON(t, router, http.MethodGet, "/api/skills", nil, "")
	require.Equal(t, http.StatusOK, list.Code)
	var skills []models.Skill
	decodeBody(t, list, &skills)
	require.Len(t, skills, 1)
	assert.Equal(t, survivor.ID, skills[0].ID)

	categories := doJSON(t, router, http.MethodGet, "/api/skills/categories", nil, "")
	var cats []models.SkillCategory
	decodeBody(t, categories, &cats)
	require.Len(t, cats, 1)
	assert.Equal(t, kept.ID, cats[0].ID)
}

func TestDeleteCategoryWithoutSkillsSucceeds(t *testing.T) {
	router, d := setupTest(t)
	token := adminToken(t, d)
	category := createTestCategory(t, router, token, "Empty")

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/skills/categories/%s", category.ID), nil, token)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSkillWritesRequireAuth(t *testing.T) {
	router, _ := setupTest(t)

	rec := doJSON(t, router, http.MethodPost, "/api/skills/categories", map[string]string{
		"name": "Backend", "description": "d", "icon": "server",
	}, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSkillRequiresCategoryID(t *testing.T) {
	router, d := setupTest(t)
	token := adminToken(t, d)

	rec := doJSON(t, router, http.MethodPost, "/api/skills", map[string]interface{}{
		"name": "Go", "icon": "gopher", "percent": 50,
	}, token)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "categoryId", body["field"])
}
