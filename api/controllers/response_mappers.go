package controllers

import (
	"strconv"

	"Litfeed/api/models"

	"github.com/gin-gonic/gin"
)

func userToResponse(user *models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		AvatarPath:     user.AvatarPath,
		IsAdmin:        user.IsAdmin,
		FollowersCount: int(user.FollowersCount),
		FollowingCount: int(user.FollowingCount),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func userToSummary(user *models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

func authorToResponse(author *models.Author) AuthorDTO {
	books := make([]BookDTO, len(author.Books))
	for i := range author.Books {
		books[i] = bookToResponse(&author.Books[i], false)
	}
	return AuthorDTO{
		ID:        author.ID,
		Name:      author.Name,
		Books:     books,
		BookCount: len(books),
		CreatedAt: author.CreatedAt,
		UpdatedAt: author.UpdatedAt,
	}
}

func bookToResponse(book *models.Book, withAuthor bool) BookDTO {
	dto := BookDTO{
		ID:              book.ID,
		Title:           book.Title,
		PublicationYear: book.PublicationYear,
		AuthorID:        book.AuthorID,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
	if withAuthor && book.Author.ID != 0 {
		author := authorToResponse(&book.Author)
		dto.Author = &author
	}
	return dto
}

func postToResponse(post *models.Post) PostDTO {
	return PostDTO{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		Author:    userToSummary(&post.Author),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func postsToResponse(posts []models.Post) []PostDTO {
	out := make([]PostDTO, len(posts))
	for i := range posts {
		out[i] = postToResponse(&posts[i])
	}
	return out
}

func commentToResponse(comment *models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		UserID:    comment.UserID,
		PostID:    comment.PostID,
		Username:  comment.Author.Username,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func likeToResponse(like *models.Like) LikeDTO {
	return LikeDTO{
		ID:        like.ID,
		UserID:    like.UserID,
		PostID:    like.PostID,
		CreatedAt: like.CreatedAt,
	}
}

func buildPagination(page, limit int, total int64) PaginationDTO {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return PaginationDTO{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// parsePageParams reads page/limit query parameters with the usual caps.
func parsePageParams(c *gin.Context) (page, limit, offset int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}
