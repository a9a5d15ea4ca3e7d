package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postCols = []string{"post_id", "user_id", "title", "content", "trip_id", "place_id", "name", "profile_picture",
	"like_count", "comment_count", "liked", "bookmarked", "created_at", "updated_at"}

func TestPostRepository_List_FollowingFeedWithTag(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`t.tag = \$3\) AND p.user_id IN \(SELECT followee_id FROM follows WHERE follower_id = \$4\) ORDER BY p.created_at DESC, p.post_id DESC LIMIT 11 OFFSET 0`).
		WithArgs(int64(8), int64(8), "kyoto", int64(8)).
		WillReturnRows(sqlmock.NewRows(postCols))

	posts, err := NewPostRepository(db).List(context.Background(), models.PostFilter{
		Tag: "kyoto", FollowingOf: 8, ViewerID: 8, Limit: 11,
	})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_List_KeywordIsLiteral(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`WHERE \(p.title ILIKE \$3 OR p.content ILIKE \$4\)`).
		WithArgs(int64(0), int64(0), `%\_\_%`, `%\_\_%`).
		WillReturnRows(sqlmock.NewRows(postCols))

	posts, err := NewPostRepository(db).List(context.Background(), models.PostFilter{Keyword: "__", Limit: 11})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_ReplaceTags(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM post_tags WHERE post_id = \\$1").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO post_tags \(post_id,tag\) VALUES \(\$1,\$2\),\(\$3,\$4\)`).
		WithArgs(int64(3), "food", int64(3), "kyoto").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, NewPostRepository(db).ReplaceTags(context.Background(), nil, 3, []string{"food", "kyoto"}))
}

func TestReactionRepository_AddLike(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO post_likes").WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := NewReactionRepository(db).AddLike(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, added)
}
