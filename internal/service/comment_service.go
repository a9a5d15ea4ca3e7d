package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
)

const maxCommentLength = 1000

type CommentService interface {
	List(ctx context.Context, postID int64) ([]*models.Comment, error)
	Create(ctx context.Context, userID, postID int64, content string) (*models.Comment, error)
	Remove(ctx context.Context, userID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

func (s *commentService) List(ctx context.Context, postID int64) ([]*models.Comment, error) {
	if _, err := s.post(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) Create(ctx context.Context, userID, postID int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewValidationError("content", "請輸入留言")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, NewValidationError("content", fmt.Sprintf("留言不能超過%d字", maxCommentLength))
	}
	if _, err := s.post(ctx, postID); err != nil {
		return nil, err
	}

	id, err := s.comments.Create(ctx, &models.Comment{PostID: postID, UserID: userID, Content: content})
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading comment: %w", err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

// Remove is allowed for the comment's author and for the post's author.
func (s *commentService) Remove(ctx context.Context, userID, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("error loading comment: %w", err)
	}
	if comment == nil {
		return ErrNotFound
	}

	if comment.UserID != userID {
		post, err := s.post(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return ErrForbidden
		}
	}

	if err := s.comments.Remove(ctx, commentID); err != nil {
		return fmt.Errorf("error removing comment: %w", err)
	}
	return nil
}

func (s *commentService) post(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, fmt.Errorf("error loading post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}
