package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error)
	Remove(ctx context.Context, id int64) error
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentSelect = `
	SELECT c.comment_id, c.post_id, c.user_id, c.content, u.name, u.profile_picture, c.created_at
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.AuthorName, &c.AuthorAvatar, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	query := `INSERT INTO comments (post_id, user_id, content) VALUES ($1, $2, $3) RETURNING comment_id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, comment.PostID, comment.UserID, comment.Content).Scan(&id); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, commentSelect+" WHERE c.comment_id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, commentSelect+" WHERE c.post_id = $1 ORDER BY c.created_at, c.comment_id", postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) Remove(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, id); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
