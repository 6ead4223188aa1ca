package usecase

import (
	"context"
	"strings"
	"time"

	"resourceshub/dto"
	"resourceshub/model"
	"resourceshub/utils"
)

const defaultPostsPerPage = 20

type ForumService struct {
	repo PostRepository
	now  func() time.Time
}

func NewForumService(repo PostRepository) *ForumService {
	return &ForumService{repo: repo, now: time.Now}
}

// ListPosts pages through posts, newest first.
func (s *ForumService) ListPosts(ctx context.Context, page, limit int) (dto.Page[*model.Post], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPostsPerPage
	}
	posts, total, err := s.repo.ListPosts(ctx, page, limit)
	if err != nil {
		return dto.Page[*model.Post]{}, translate(err)
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	return dto.Page[*model.Post]{
		TotalCount:  int(total),
		CurrentPage: page,
		TotalPages:  dto.TotalPages(int(total), limit),
		Data:        posts,
	}, nil
}

func (s *ForumService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.repo.GetPost(ctx, postID)
	return post, translate(err)
}

func (s *ForumService) CreatePost(ctx context.Context, author model.AuthUser, title, content string) (*model.Post, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, invalid("Title and content are required")
	}

	now := s.now().UTC()
	post := &model.Post{
		PostID:    utils.GenerateOrderedID(),
		Title:     title,
		Content:   content,
		AuthorID:  author.ID,
		Author:    author.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, translate(err)
	}
	return post, nil
}

// UpdatePost is restricted to the author. Blank fields keep their value.
func (s *ForumService) UpdatePost(ctx context.Context, user model.AuthUser, postID, title, content string) (*model.Post, error) {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, translate(err)
	}
	if post.AuthorID != user.ID {
		return nil, ErrForbidden
	}

	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" {
		title = post.Title
	}
	if content == "" {
		content = post.Content
	}
	updated, err := s.repo.UpdatePost(ctx, postID, title, content)
	return updated, translate(err)
}

// DeletePost is allowed for the author and for admins.
func (s *ForumService) DeletePost(ctx context.Context, user model.AuthUser, postID string) error {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return translate(err)
	}
	if post.AuthorID != user.ID && !user.IsAdmin() {
		return ErrForbidden
	}
	return translate(s.repo.DeletePost(ctx, postID))
}
