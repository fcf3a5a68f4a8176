package service

import (
	"context"
	"fmt"
	"time"

	"contesthub/internal/common"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"

	"github.com/google/uuid"
)

type ArticleService struct {
	articleRepo repository.ArticleRepository
}

func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

type CreateArticleRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	TopicsCovered      []string `json:"topicsCovered"`
	AllowedDepartments []string `json:"allowedDepartments"`
	Content            string   `json:"content"`
	Link               string   `json:"link"`
}

// CreateArticle validates and stores a study resource. Content and link
// are mutually exclusive and exactly one must be present.
func (s *ArticleService) CreateArticle(ctx context.Context, creator security.SessionClaims, req CreateArticleRequest) (*model.Article, error) {
	if req.Title == "" || req.Description == "" {
		return nil, common.Errorf("title and description are required: %w", common.ErrValidation)
	}
	if (req.Content == "") == (req.Link == "") {
		return nil, common.Errorf("exactly one of content or link is required: %w", common.ErrValidation)
	}

	article := &model.Article{
		ID:                 uuid.NewString(),
		Title:              req.Title,
		Description:        req.Description,
		TopicsCovered:      req.TopicsCovered,
		AllowedDepartments: req.AllowedDepartments,
		Content:            req.Content,
		Link:               req.Link,
		Uploader:           creator.UserID,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.articleRepo.Insert(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}
	return article, nil
}

func (s *ArticleService) ListArticles(ctx context.Context) ([]*model.Article, error) {
	return s.articleRepo.List(ctx)
}

// DeleteArticle removes an article; only its uploader or a super admin
// may do so.
func (s *ArticleService) DeleteArticle(ctx context.Context, caller security.SessionClaims, id string) error {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if article.Uploader != caller.UserID && !caller.IsSuper {
		return common.Errorf("only the uploader or a super admin may delete it: %w", common.ErrForbidden)
	}
	return s.articleRepo.Delete(ctx, id)
}
