package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type skillHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.SkillCategoryRepo
	skillRepo    *database.SkillRepo
}

func newSkillHandler(categoryRepo *database.SkillCategoryRepo, skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		skillRepo:    skillRepo,
	}
}

// Skill category endpoints

func (h skillHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}

		if categories == nil {
			categories = []*models.SkillCategory{}
		}
		h.responder.WriteJSON(w, categories)
	}
}

func (h skillHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category models.SkillCategory
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode category request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("category", err))
			return
		}

		category.Normalize()
		if err := category.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create category", "category", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

func (h skillHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseIDParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}

		var category models.SkillCategory
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode category request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("category", err))
			return
		}

		category.ID = categoryID
		category.CreatedAt = existing.CreatedAt

		category.Normalize()
		if err := category.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categoryRepo.Update(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update category", "category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory removes a category and cascades to every skill referencing
// it, mirroring the cascade the admin panel warns about.
func (h skillHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseIDParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.categoryRepo.FindByID(categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}

		if err := h.categoryRepo.Delete(categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete category", "category", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Category and related skills deleted successfully",
		})
	}
}

// Individual skill endpoints

func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skills", "skills", err))
			return
		}

		if skills == nil {
			skills = []*models.Skill{}
		}
		h.responder.WriteJSON(w, skills)
	}
}

func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var skill models.Skill
		if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("skill", err))
			return
		}

		skill.Normalize()
		if err := skill.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create skill", "skill", err))
			return
		}

		// Reload to embed the category for the response.
		created, err := h.skillRepo.FindByID(skill.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created skill", "skill", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseIDParam(r, "skillID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skill", "skill", err))
			return
		}

		var skill models.Skill
		if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("skill", err))
			return
		}

		skill.ID = skillID
		skill.CreatedAt = existing.CreatedAt
		skill.Category = nil

		skill.Normalize()
		if err := skill.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Update(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update skill", "skill", err))
			return
		}

		updated, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated skill", "skill", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseIDParam(r, "skillID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.skillRepo.FindByID(skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skill", "skill", err))
			return
		}

		if err := h.skillRepo.Delete(skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete skill", "skill", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Skill deleted successfully",
		})
	}
}
