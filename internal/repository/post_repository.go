package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/maheshrc27/tripnest-api/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id, viewerID int64) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	Update(ctx context.Context, tx *sql.Tx, post *models.Post) error
	Remove(ctx context.Context, id int64) error
	ReplaceTags(ctx context.Context, tx *sql.Tx, postID int64, tags []string) error
	TagsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error)
	TopTags(ctx context.Context, limit int) ([]*models.TagCount, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func postSelect(viewerID int64) squirrel.SelectBuilder {
	return psql.Select(
		"p.post_id", "p.user_id", "p.title", "p.content", "p.trip_id", "p.place_id",
		"u.name", "u.profile_picture",
		"(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.post_id)",
		"(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id)",
	).
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.post_id AND pl.user_id = ?)", viewerID)).
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM post_bookmarks pb WHERE pb.post_id = p.post_id AND pb.user_id = ?)", viewerID)).
		Columns("p.created_at", "p.updated_at").
		From("posts p").
		Join("users u ON u.id = p.user_id")
}

func scanPost(row rowScanner) (*models.Post, error) {
	var p models.Post
	var tripID, placeID sql.NullInt64
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &tripID, &placeID,
		&p.AuthorName, &p.AuthorAvatar, &p.LikeCount, &p.CommentCount, &p.Liked, &p.Bookmarked,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tripID.Valid {
		p.TripID = &tripID.Int64
	}
	if placeID.Valid {
		p.PlaceID = &placeID.Int64
	}
	p.Tags = []string{}
	p.Photos = []*models.PostPhoto{}
	return &p, nil
}

func (r *postRepository) GetByID(ctx context.Context, id, viewerID int64) (*models.Post, error) {
	query, args, err := postSelect(viewerID).Where(squirrel.Eq{"p.post_id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	post, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

// List returns the feed newest first. Every non-zero filter field narrows it.
func (r *postRepository) List(ctx context.Context, f models.PostFilter) ([]*models.Post, error) {
	sb := postSelect(f.ViewerID)
	if f.Tag != "" {
		sb = sb.Where("EXISTS (SELECT 1 FROM post_tags t WHERE t.post_id = p.post_id AND t.tag = ?)", f.Tag)
	}
	if f.AuthorID > 0 {
		sb = sb.Where(squirrel.Eq{"p.user_id": f.AuthorID})
	}
	if f.Keyword != "" {
		pattern := containsPattern(f.Keyword)
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"p.title": pattern},
			squirrel.ILike{"p.content": pattern},
		})
	}
	if f.FollowingOf > 0 {
		sb = sb.Where("p.user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)", f.FollowingOf)
	}
	if f.BookmarkOf > 0 {
		sb = sb.Where("EXISTS (SELECT 1 FROM post_bookmarks b WHERE b.post_id = p.post_id AND b.user_id = ?)", f.BookmarkOf)
	}
	sb = sb.OrderBy("p.created_at DESC", "p.post_id DESC")
	if f.Limit > 0 {
		sb = sb.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, title, content, trip_id, place_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING post_id
	`

	var id int64
	err := pick(r.db, tx).QueryRowContext(ctx, query, post.UserID, post.Title, post.Content, post.TripID, post.PlaceID).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) Update(ctx context.Context, tx *sql.Tx, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1,
			content = $2,
			trip_id = $3,
			place_id = $4,
			updated_at = $5
		WHERE post_id = $6
	`
	_, err := pick(r.db, tx).ExecContext(ctx, query, post.Title, post.Content, post.TripID, post.PlaceID, time.Now(), post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE post_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) ReplaceTags(ctx context.Context, tx *sql.Tx, postID int64, tags []string) error {
	q := pick(r.db, tx)
	if _, err := q.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		slog.Info(err.Error())
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	ib := psql.Insert("post_tags").Columns("post_id", "tag")
	for _, tag := range tags {
		ib = ib.Values(postID, tag)
	}
	query, args, err := ib.ToSql()
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) TagsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	tags := make(map[int64][]string, len(postIDs))
	if len(postIDs) == 0 {
		return tags, nil
	}

	query := `SELECT post_id, tag FROM post_tags WHERE post_id = ANY($1) ORDER BY post_id, tag`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var tag string
		if err := rows.Scan(&postID, &tag); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		tags[postID] = append(tags[postID], tag)
	}
	return tags, rows.Err()
}

func (r *postRepository) TopTags(ctx context.Context, limit int) ([]*models.TagCount, error) {
	query := `
		SELECT tag, COUNT(*) AS count
		FROM post_tags
		GROUP BY tag
		ORDER BY count DESC, tag
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	counts := []*models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		counts = append(counts, &tc)
	}
	return counts, rows.Err()
}
