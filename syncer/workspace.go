package syncer

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/portfolio-site-backend/client"
	"github.com/rpupo63/portfolio-site-backend/localcache"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// Cache slot kinds, one per entity type.
const (
	KindProjects   = "projects"
	KindCategories = "skillCategories"
	KindSkills     = "skills"
	KindMessages   = "messages"
)

// Workspace bundles one controller per entity type. Renderers read entirely
// from the workspace; nothing else talks to the API or the cache.
type Workspace struct {
	Projects   *Controller[models.Project, *models.Project]
	Categories *Controller[models.SkillCategory, *models.SkillCategory]
	Skills     *Controller[models.Skill, *models.Skill]
	Messages   *Controller[models.ContactMessage, *models.ContactMessage]
}

func NewWorkspace(api *client.Client, cache *localcache.Store) *Workspace {
	return &Workspace{
		Projects:   NewController[models.Project](KindProjects, client.Projects(api), cache),
		Categories: NewController[models.SkillCategory](KindCategories, client.SkillCategories(api), cache),
		Skills:     NewController[models.Skill](KindSkills, client.Skills(api), cache),
		Messages:   NewController[models.ContactMessage](KindMessages, client.Messages(api), cache),
	}
}

// RefreshResult records which path served each collection on the last
// Refresh.
type RefreshResult struct {
	Projects   Source
	Categories Source
	Skills     Source
	Messages   Source
}

// Refresh reloads all four collections concurrently. The first
// non-infrastructure error aborts the remaining fetches.
func (w *Workspace) Refresh(ctx context.Context) (RefreshResult, error) {
	var res RefreshResult

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Projects, err = w.Projects.Refresh(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.Categories, err = w.Categories.Refresh(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.Skills, err = w.Skills.Refresh(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.Messages, err = w.Messages.Refresh(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

// DeleteSkillCategory deletes a category and cascades to every skill
// referencing it. The server cascades on its side; the working set is pruned
// to match, and when the delete itself was served locally the pruned skill
// collection is persisted too.
func (w *Workspace) DeleteSkillCategory(ctx context.Context, id uuid.UUID) (Source, error) {
	src, err := w.Categories.Delete(ctx, id)
	if err != nil {
		return src, err
	}

	persist := src == SourceFallback
	if _, err := w.Skills.Prune(func(s *models.Skill) bool { return s.CategoryID == id }, persist); err != nil {
		return src, err
	}
	return src, nil
}
