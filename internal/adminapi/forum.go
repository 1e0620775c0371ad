package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/webserver"
	"github.com/revline/revline/pkg/common"
)

type topicPayload struct {
	CategoryId int64  `json:"category_id,string" validate:"required"`
	Title      string `json:"title" validate:"required,min=3,max=200"`
	Content    string `json:"content" validate:"required"`
}

type postPayload struct {
	Content string `json:"content" validate:"required"`
}

func registerForumRoutes() {
	webserver.PubGET("/forum/categories", listForumCategories)
	webserver.PubGET("/forum/topics", listTopics)
	webserver.PubGET("/forum/topics/:id", getTopic)
	webserver.ApiPOST("/forum/topics", createTopic)
	webserver.ApiPOST("/forum/topics/:id/posts", createPost)
	webserver.ApiDELETE("/forum/posts/:id", deletePost)
	webserver.ApiPOST("/forum/posts/:id/like", togglePostLike)
}

func listForumCategories(c echo.Context) error {
	var rows []domain.ForumCategory
	if err := GetDB(c).
		Where("is_active = ?", true).
		Order("sort ASC, name ASC").
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}

func listTopics(c echo.Context) error {
	page, pageSize := parsePagination(c)
	db := GetDB(c).Model(&domain.ForumTopic{})
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		db = db.Where("category_id = ?", cat)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("title ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query topics", err.Error())
	}
	var rows []domain.ForumTopic
	if err := db.Order("is_pinned DESC, updated_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query topics", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getTopic(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid topic ID", nil)
	}
	var topic domain.ForumTopic
	if err := GetDB(c).First(&topic, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Topic not found", nil)
	}

	// View counting is best effort; lost increments under concurrency are
	// acceptable here, so no guard needed beyond the atomic expression.
	GetDB(c).Model(&domain.ForumTopic{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))

	var posts []domain.ForumPost
	if err := GetDB(c).Where("topic_id = ?", id).Order("created_at ASC").Find(&posts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query posts", err.Error())
	}

	likeCounts := map[int64]int64{}
	if len(posts) > 0 {
		postIDs := make([]int64, 0, len(posts))
		for _, p := range posts {
			postIDs = append(postIDs, p.ID)
		}
		var rows []struct {
			PostId int64
			Count  int64
		}
		GetDB(c).Model(&domain.ForumLike{}).
			Select("post_id, count(*) as count").
			Where("post_id IN ?", postIDs).
			Group("post_id").
			Scan(&rows)
		for _, r := range rows {
			likeCounts[r.PostId] = r.Count
		}
	}

	return ok(c, map[string]interface{}{
		"topic": topic,
		"posts": posts,
		"likes": likeCounts,
	})
}

func createTopic(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	var payload topicPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse topic", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Topic validation failed", err.Error())
	}

	var category domain.ForumCategory
	if err := GetDB(c).Where("id = ? AND is_active = ?", payload.CategoryId, true).First(&category).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Forum category not found", nil)
	}

	now := time.Now()
	topic := domain.ForumTopic{
		ID:         common.UUIDint64(),
		CategoryId: category.ID,
		AuthorId:   userID,
		Title:      strings.TrimSpace(payload.Title),
		Content:    payload.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := GetDB(c).Create(&topic).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create topic", err.Error())
	}
	return ok(c, topic)
}

func createPost(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	topicID, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid topic ID", nil)
	}
	var topic domain.ForumTopic
	if err := GetDB(c).First(&topic, topicID).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Topic not found", nil)
	}
	if topic.IsClosed {
		return fail(c, http.StatusConflict, "TOPIC_CLOSED", "Topic is closed for replies", nil)
	}

	var payload postPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse post", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Post validation failed", err.Error())
	}

	now := time.Now()
	post := domain.ForumPost{
		ID:        common.UUIDint64(),
		TopicId:   topic.ID,
		AuthorId:  userID,
		Content:   payload.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&post).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create post", err.Error())
	}
	GetDB(c).Model(&domain.ForumTopic{}).Where("id = ?", topic.ID).Update("updated_at", now)
	return ok(c, post)
}

// deletePost lets the author or staff remove a post.
func deletePost(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID", nil)
	}
	var post domain.ForumPost
	if err := GetDB(c).First(&post, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Post not found", nil)
	}
	level := webserver.CurrentLevel(c)
	if post.AuthorId != userID && level != domain.LevelStaff && level != domain.LevelSuper {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Post belongs to another user", nil)
	}
	GetDB(c).Where("post_id = ?", post.ID).Delete(&domain.ForumLike{})
	if err := GetDB(c).Delete(&domain.ForumPost{}, post.ID).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete post", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

// togglePostLike adds a like, or removes it when one already exists. The
// unique (post, user) index makes a concurrent double-like collapse into
// one row.
func togglePostLike(c echo.Context) error {
	userID := webserver.CurrentUserID(c)
	id, err := paramInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID", nil)
	}
	var post domain.ForumPost
	if err := GetDB(c).First(&post, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Post not found", nil)
	}

	res := GetDB(c).Where("post_id = ? AND user_id = ?", post.ID, userID).Delete(&domain.ForumLike{})
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to toggle like", res.Error.Error())
	}
	if res.RowsAffected > 0 {
		return ok(c, map[string]interface{}{"liked": false})
	}

	like := domain.ForumLike{
		ID:        common.UUIDint64(),
		PostId:    post.ID,
		UserId:    userID,
		CreatedAt: time.Now(),
	}
	err = GetDB(c).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to toggle like", err.Error())
	}
	return ok(c, map[string]interface{}{"liked": true})
}
