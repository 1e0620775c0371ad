package domain

import "time"

type ForumCategory struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug" form:"slug"`
	Description string    `json:"description" form:"description"`
	Sort        int       `json:"sort" form:"sort"`
	IsActive    bool      `json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName Specify table name
func (ForumCategory) TableName() string {
	return "forum_category"
}

type ForumTopic struct {
	ID         int64     `json:"id,string" form:"id"`
	CategoryId int64     `gorm:"index" json:"category_id,string" form:"category_id"`
	AuthorId   int64     `gorm:"index" json:"author_id,string" form:"author_id"`
	Title      string    `json:"title" form:"title"`
	Content    string    `json:"content" form:"content"`
	IsPinned   bool      `json:"is_pinned" form:"is_pinned"`
	IsClosed   bool      `json:"is_closed" form:"is_closed"`
	Views      int64     `json:"views" form:"views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName Specify table name
func (ForumTopic) TableName() string {
	return "forum_topic"
}

type ForumPost struct {
	ID        int64     `json:"id,string" form:"id"`
	TopicId   int64     `gorm:"index" json:"topic_id,string" form:"topic_id"`
	AuthorId  int64     `gorm:"index" json:"author_id,string" form:"author_id"`
	Content   string    `json:"content" form:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (ForumPost) TableName() string {
	return "forum_post"
}

// ForumLike is unique per (post, user); adding twice removes the like.
type ForumLike struct {
	ID        int64     `json:"id,string" form:"id"`
	PostId    int64     `gorm:"uniqueIndex:uk_like_post_user" json:"post_id,string" form:"post_id"`
	UserId    int64     `gorm:"uniqueIndex:uk_like_post_user" json:"user_id,string" form:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ForumLike) TableName() string {
	return "forum_like"
}
