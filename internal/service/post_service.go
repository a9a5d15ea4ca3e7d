package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

const (
	maxTitleLength  = 150
	maxTags         = 10
	maxTagLength    = 30
	maxPhotosPerReq = 10
	defaultTagLimit = 20

	FeedFollowing = "following"
)

type PostService interface {
	List(ctx context.Context, viewerID int64, q transfer.PostQuery) (*transfer.PostPage, error)
	Get(ctx context.Context, postID, viewerID int64) (*models.Post, error)
	Create(ctx context.Context, userID int64, in *transfer.PostInput) (*models.Post, error)
	Update(ctx context.Context, userID, postID int64, in *transfer.PostInput) (*models.Post, error)
	Remove(ctx context.Context, userID, postID int64) error
	UploadPhotos(ctx context.Context, userID, postID int64, files []*multipart.FileHeader) (*transfer.PhotoUploadResponse, error)
	ToggleLike(ctx context.Context, userID, postID int64) (*transfer.LikeResponse, error)
	ToggleBookmark(ctx context.Context, userID, postID int64) (*transfer.BookmarkResponse, error)
	ListBookmarks(ctx context.Context, userID int64, page, limit int) (*transfer.PostPage, error)
	ListTags(ctx context.Context, limit int) ([]*models.TagCount, error)
}

type postService struct {
	tx        repository.Transactor
	posts     repository.PostRepository
	photos    repository.PostPhotoRepository
	reactions repository.ReactionRepository
	storage   ObjectStorage
}

func NewPostService(
	tx repository.Transactor,
	posts repository.PostRepository,
	photos repository.PostPhotoRepository,
	reactions repository.ReactionRepository,
	storage ObjectStorage) PostService {
	return &postService{
		tx:        tx,
		posts:     posts,
		photos:    photos,
		reactions: reactions,
		storage:   storage,
	}
}

// NormalizeTags trims, strips a leading '#', lowercases and dedupes tags,
// keeping the first maxTags in input order.
func NormalizeTags(raw []string) []string {
	tags := []string{}
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t == "" || utf8.RuneCountInString(t) > maxTagLength {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

func validatePost(in *transfer.PostInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return NewValidationError("title", "請輸入標題")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return NewValidationError("title", fmt.Sprintf("標題不能超過%d字", maxTitleLength))
	}
	if strings.TrimSpace(in.Content) == "" {
		return NewValidationError("content", "請輸入內容")
	}
	return nil
}

func (s *postService) List(ctx context.Context, viewerID int64, q transfer.PostQuery) (*transfer.PostPage, error) {
	page, limit := pageBounds(q.Page, q.Limit)
	filter := models.PostFilter{
		Tag:      strings.ToLower(strings.TrimPrefix(strings.TrimSpace(q.Tag), "#")),
		AuthorID: q.AuthorID,
		Keyword:  strings.TrimSpace(q.Keyword),
		ViewerID: viewerID,
		Limit:    limit + 1,
		Offset:   (page - 1) * limit,
	}
	if q.Feed == FeedFollowing {
		if viewerID == 0 {
			return nil, ErrUnauthorized
		}
		filter.FollowingOf = viewerID
	}
	return s.page(ctx, filter, page, limit)
}

func (s *postService) ListBookmarks(ctx context.Context, userID int64, page, limit int) (*transfer.PostPage, error) {
	page, limit = pageBounds(page, limit)
	filter := models.PostFilter{
		BookmarkOf: userID,
		ViewerID:   userID,
		Limit:      limit + 1,
		Offset:     (page - 1) * limit,
	}
	return s.page(ctx, filter, page, limit)
}

func (s *postService) page(ctx context.Context, filter models.PostFilter, page, limit int) (*transfer.PostPage, error) {
	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	posts, p := trimPage(posts, page, limit)
	if err := s.hydrate(ctx, posts); err != nil {
		return nil, err
	}
	return &transfer.PostPage{Posts: posts, Pagination: p}, nil
}

// hydrate fills tags and photos with one query each for the whole page.
func (s *postService) hydrate(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	tags, err := s.posts.TagsByPostIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading tags: %w", err)
	}
	photos, err := s.photos.ListByPostIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading photos: %w", err)
	}
	for _, p := range posts {
		if t, ok := tags[p.ID]; ok {
			p.Tags = t
		}
		if ph, ok := photos[p.ID]; ok {
			p.Photos = ph
		}
	}
	return nil
}

func (s *postService) Get(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error loading post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if err := s.hydrate(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, userID int64, in *transfer.PostInput) (*models.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:  userID,
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		TripID:  in.TripID,
		PlaceID: in.PlaceID,
	}
	tags := NormalizeTags(in.Tags)

	var postID int64
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		var err error
		postID, err = s.posts.Create(ctx, tx, post)
		if err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		if err := s.posts.ReplaceTags(ctx, tx, postID, tags); err != nil {
			return fmt.Errorf("error saving tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, postID, userID)
}

func (s *postService) Update(ctx context.Context, userID, postID int64, in *transfer.PostInput) (*models.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}

	post, err := s.authoredPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	post.TripID = in.TripID
	post.PlaceID = in.PlaceID
	tags := NormalizeTags(in.Tags)

	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.posts.Update(ctx, tx, post); err != nil {
			return fmt.Errorf("error updating post: %w", err)
		}
		if err := s.posts.ReplaceTags(ctx, tx, postID, tags); err != nil {
			return fmt.Errorf("error saving tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, postID, userID)
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	if _, err := s.authoredPost(ctx, userID, postID); err != nil {
		return err
	}
	if err := s.posts.Remove(ctx, postID); err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}
	return nil
}

// UploadPhotos appends photos after the existing ones, one file at a time.
func (s *postService) UploadPhotos(ctx context.Context, userID, postID int64, files []*multipart.FileHeader) (*transfer.PhotoUploadResponse, error) {
	if len(files) == 0 {
		return nil, NewValidationError("files", "請選擇檔案")
	}
	if len(files) > maxPhotosPerReq {
		return nil, NewValidationError("files", fmt.Sprintf("一次最多上傳%d張", maxPhotosPerReq))
	}
	if _, err := s.authoredPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	order, err := s.photos.NextDisplayOrder(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error computing display order: %w", err)
	}

	res := &transfer.PhotoUploadResponse{
		Uploaded: []*models.PostPhoto{},
		Failed:   []transfer.UploadFailure{},
	}
	for _, fh := range files {
		up, err := uploadFile(ctx, s.storage, fmt.Sprintf("posts/%d", postID), fh)
		if err != nil {
			slog.Info("post photo upload failed", "file", fh.Filename, "error", err)
			res.Failed = append(res.Failed, transfer.UploadFailure{FileName: fh.Filename, Error: failureMessage(err)})
			continue
		}

		photo := &models.PostPhoto{PostID: postID, FileName: up.Key, ImageURL: up.URL, DisplayOrder: order}
		id, err := s.photos.Create(ctx, nil, photo)
		if err != nil {
			slog.Info("post photo save failed", "file", fh.Filename, "error", err)
			res.Failed = append(res.Failed, transfer.UploadFailure{FileName: fh.Filename, Error: uploadFailedMessage})
			continue
		}
		photo.ID = id
		order++
		res.Uploaded = append(res.Uploaded, photo)
	}
	return res, nil
}

func (s *postService) ToggleLike(ctx context.Context, userID, postID int64) (*transfer.LikeResponse, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.reactions.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("error liking post: %w", err)
	}
	if !liked {
		if _, err := s.reactions.RemoveLike(ctx, postID, userID); err != nil {
			return nil, fmt.Errorf("error unliking post: %w", err)
		}
	}

	count, err := s.reactions.CountLikes(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}
	return &transfer.LikeResponse{Liked: liked, LikeCount: count}, nil
}

func (s *postService) ToggleBookmark(ctx context.Context, userID, postID int64) (*transfer.BookmarkResponse, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	added, err := s.reactions.AddBookmark(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("error bookmarking post: %w", err)
	}
	if !added {
		if _, err := s.reactions.RemoveBookmark(ctx, postID, userID); err != nil {
			return nil, fmt.Errorf("error removing bookmark: %w", err)
		}
	}
	return &transfer.BookmarkResponse{Bookmarked: added}, nil
}

func (s *postService) ListTags(ctx context.Context, limit int) ([]*models.TagCount, error) {
	if limit < 1 || limit > 100 {
		limit = defaultTagLimit
	}
	tags, err := s.posts.TopTags(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}
	return tags, nil
}

func (s *postService) ensurePost(ctx context.Context, postID int64) error {
	post, err := s.posts.GetByID(ctx, postID, 0)
	if err != nil {
		return fmt.Errorf("error loading post: %w", err)
	}
	if post == nil {
		return ErrNotFound
	}
	return nil
}

func (s *postService) authoredPost(ctx context.Context, userID, postID int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.UserID != userID {
		return nil, ErrForbidden
	}
	return post, nil
}
