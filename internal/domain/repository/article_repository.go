package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
)

type ArticleRepository interface {
	Insert(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id string) (*model.Article, error)
	List(ctx context.Context) ([]*model.Article, error)
	Delete(ctx context.Context, id string) error
}

type pgArticleRepository struct {
	db *sql.DB
}

func NewPgArticleRepository(db *sql.DB) ArticleRepository {
	return &pgArticleRepository{db: db}
}

func (r *pgArticleRepository) Insert(ctx context.Context, article *model.Article) error {
	doc, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("pgArticleRepository.Insert: marshal: %w", err)
	}
	query := `INSERT INTO articles (id, uploader, created_at, doc) VALUES ($1, $2, $3, $4)`
	_, err = r.db.ExecContext(ctx, query, article.ID, article.Uploader, article.CreatedAt, doc)
	if err != nil {
		return fmt.Errorf("pgArticleRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgArticleRepository) FindByID(ctx context.Context, id string) (*model.Article, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM articles WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgArticleRepository.FindByID: %w", err)
	}
	article := &model.Article{}
	if err := json.Unmarshal(doc, article); err != nil {
		return nil, fmt.Errorf("pgArticleRepository.FindByID: unmarshal: %w", err)
	}
	return article, nil
}

func (r *pgArticleRepository) List(ctx context.Context) ([]*model.Article, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("pgArticleRepository.List: %w", err)
	}
	defer rows.Close()

	var articles []*model.Article
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("pgArticleRepository.List: scan: %w", err)
		}
		article := &model.Article{}
		if err := json.Unmarshal(doc, article); err != nil {
			return nil, fmt.Errorf("pgArticleRepository.List: unmarshal: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgArticleRepository.List: %w", err)
	}
	return articles, nil
}

func (r *pgArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgArticleRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
