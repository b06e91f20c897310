package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status is a post's visibility state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	Status    Status    `json:"status" gorm:"type:varchar(16);default:draft;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "blog_posts" }

// OwnerID satisfies the ownership check in middlewares.
func (p *Post) OwnerID() uint { return p.AuthorID }

// PostFilter narrows FindAll. Zero values mean "no filter".
type PostFilter struct {
	Status   Status
	AuthorID uint
}

// PostUpdate carries a partial update; empty fields are left untouched.
type PostUpdate struct {
	Title   string
	Content string
	Status  Status
}

// PostStore persists blog posts.
type PostStore struct {
	DB *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{DB: db}
}

func (s *PostStore) Create(post *Post) error {
	if post.Status == "" {
		post.Status = StatusDraft
	}
	if err := s.DB.Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// FindAll returns posts matching the filter, newest first, with the author
// record preloaded for display.
func (s *PostStore) FindAll(filter PostFilter) ([]Post, error) {
	query := s.DB.Preload("Author").Order("created_at desc")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	var posts []Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostStore) FindByID(id uint) (*Post, error) {
	var post Post
	if err := s.DB.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update applies the supplied fields only. With nothing supplied it is a
// no-op and the stored row is returned unchanged.
func (s *PostStore) Update(id uint, in PostUpdate) (*Post, error) {
	updates := map[string]interface{}{}
	if in.Title != "" {
		updates["title"] = in.Title
	}
	if in.Content != "" {
		updates["content"] = in.Content
	}
	if in.Status != "" {
		updates["status"] = in.Status
	}
	if len(updates) > 0 {
		result := s.DB.Model(&Post{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("update post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return s.FindByID(id)
}

func (s *PostStore) Delete(id uint) error {
	result := s.DB.Delete(&Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
