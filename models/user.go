package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Role controls coarse-grained capability.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
	RoleReader Role = "reader"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAuthor, RoleReader:
		return true
	}
	return false
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never rendered
	Role      Role      `json:"role" gorm:"type:varchar(16);default:author;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrEmailTaken is returned by CreateUser when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// UserStore persists user records.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

// Create inserts a new user. The password must already be hashed.
func (s *UserStore) Create(user *User) error {
	taken, err := s.EmailExists(user.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	if user.Role == "" {
		user.Role = RoleAuthor
	}
	if err := s.DB.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail returns the full record including the password hash, for login.
func (s *UserStore) FindByEmail(email string) (*User, error) {
	var user User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*User, error) {
	var user User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) EmailExists(email string) (bool, error) {
	var count int64
	if err := s.DB.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

// FindAll returns every user, newest first.
func (s *UserStore) FindAll() ([]User, error) {
	var users []User
	if err := s.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserStore) UpdateRole(id uint, role Role) error {
	result := s.DB.Model(&User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return fmt.Errorf("update role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWithPosts removes the user and every post they authored in a single
// transaction, so a crash cannot leave posts referencing a missing user.
func (s *UserStore) DeleteWithPosts(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&Post{}).Error; err != nil {
			return fmt.Errorf("delete user posts: %w", err)
		}
		result := tx.Delete(&User{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
