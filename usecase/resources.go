package usecase

import (
	"context"
	"net/url"
	"strings"

	"resourceshub/catalog"
	"resourceshub/dto"
	"resourceshub/model"
	"resourceshub/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseCatalog is the read side of the cached catalog.
type CourseCatalog interface {
	Courses(ctx context.Context) ([]model.Course, error)
	Categories(ctx context.Context) (model.Categories, error)
	Course(ctx context.Context, id string) (model.Course, bool, error)
}

type ResourceService struct {
	catalog     CourseCatalog
	repo        ResourceRepository
	defaultPage int
}

func NewResourceService(cat CourseCatalog, repo ResourceRepository, defaultPageSize int) *ResourceService {
	return &ResourceService{catalog: cat, repo: repo, defaultPage: defaultPageSize}
}

func (s *ResourceService) Categories(ctx context.Context) (model.Categories, error) {
	return s.catalog.Categories(ctx)
}

// Courses lists catalog courses filtered by category and sub-category.
func (s *ResourceService) Courses(ctx context.Context, q dto.CourseQuery) (dto.Page[model.Course], error) {
	courses, err := s.catalog.Courses(ctx)
	if err != nil {
		return dto.Page[model.Course]{}, err
	}
	filtered := catalog.Filter(courses, q.Category, q.Subcategory)
	return dto.Paginate(filtered, q.Page, q.Limit, s.defaultPage), nil
}

// Search returns catalog courses matching query. A blank query yields an
// empty page.
func (s *ResourceService) Search(ctx context.Context, query string, page, limit int) (dto.Page[model.Course], error) {
	if strings.TrimSpace(query) == "" {
		return dto.Paginate([]model.Course{}, page, limit, s.defaultPage), nil
	}
	courses, err := s.catalog.Courses(ctx)
	if err != nil {
		return dto.Page[model.Course]{}, err
	}
	return dto.Paginate(catalog.Search(courses, query), page, limit, s.defaultPage), nil
}

func (s *ResourceService) CatalogCourse(ctx context.Context, id string) (model.Course, error) {
	course, ok, err := s.catalog.Course(ctx, id)
	if err != nil {
		return model.Course{}, err
	}
	if !ok {
		return model.Course{}, ErrNotFound
	}
	return course, nil
}

// ListStored pages through resources persisted in MongoDB.
func (s *ResourceService) ListStored(ctx context.Context, f model.ResourceFilter, page, limit int) (dto.Page[model.Resource], error) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = s.defaultPage
	}

	items, total, err := s.repo.List(ctx, f, page, limit)
	if err != nil {
		return dto.Page[model.Resource]{}, translate(err)
	}

	out := dto.Page[model.Resource]{
		TotalCount:  int(total),
		CurrentPage: page,
		Data:        items,
	}
	if limit < 0 {
		out.CurrentPage = 1
		if total > 0 {
			out.TotalPages = 1
		}
	} else {
		out.TotalPages = dto.TotalPages(int(total), limit)
	}
	return out, nil
}

func parseResourceID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, invalid("Invalid resource id")
	}
	return oid, nil
}

func (s *ResourceService) GetStored(ctx context.Context, id string) (*model.Resource, error) {
	oid, err := parseResourceID(id)
	if err != nil {
		return nil, translate(err)
	}
	res, err := s.repo.FindByID(ctx, oid)
	return res, translate(err)
}

func (s *ResourceService) CreateStored(ctx context.Context, res *model.Resource) (*model.Resource, error) {
	if err := ValidateResource(res); err != nil {
		return nil, translate(err)
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, translate(err)
	}
	return res, nil
}

func (s *ResourceService) UpdateStored(ctx context.Context, id string, res *model.Resource) (*model.Resource, error) {
	oid, err := parseResourceID(id)
	if err != nil {
		return nil, translate(err)
	}
	if err := ValidateResource(res); err != nil {
		return nil, translate(err)
	}
	updated, err := s.repo.Update(ctx, oid, res)
	return updated, translate(err)
}

func (s *ResourceService) DeleteStored(ctx context.Context, id string) error {
	oid, err := parseResourceID(id)
	if err != nil {
		return translate(err)
	}
	return translate(s.repo.Delete(ctx, oid))
}

// ValidateResource enforces the stored resource constraints and normalises
// list fields.
func ValidateResource(res *model.Resource) error {
	res.Title = strings.TrimSpace(res.Title)
	res.URL = strings.TrimSpace(res.URL)

	switch {
	case res.Title == "":
		return invalid("Title is required")
	case res.URL == "":
		return invalid("URL is required")
	case !utils.ValidDifficulty(res.Difficulty):
		return invalid("Difficulty must be one of Beginner, Intermediate, Advanced, All Levels")
	case res.Rating != nil && (*res.Rating < 0 || *res.Rating > 5):
		return invalid("Rating must be between 0 and 5")
	case res.Reviews != nil && *res.Reviews < 0:
		return invalid("Reviews cannot be negative")
	}
	if u, err := url.Parse(res.URL); err != nil || u.Host == "" {
		return invalid("URL must be absolute")
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	if res.Instructors == nil {
		res.Instructors = []string{}
	}
	return nil
}
