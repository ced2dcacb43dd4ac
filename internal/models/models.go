package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UID         string `json:"uid" db:"uid"`
	DisplayName string `json:"name" db:"display_name"`
	Email       string `json:"email" db:"email"`
	AvatarRef   string `json:"-" db:"avatar_ref"`
	BannerRef   string `json:"-" db:"banner_ref"`
	Bio         string `json:"bio" db:"bio"`
}

type Post struct {
	PostID   string `json:"postId" db:"post_id"`
	AuthorID string `json:"authorId" db:"author_id"`
	// денормализованный снимок автора; синхронизируется при обновлении профиля
	AuthorName      string         `json:"authorName" db:"author_name"`
	AuthorAvatarRef string         `json:"-" db:"author_avatar_ref"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	MediaRefs       pq.StringArray `json:"-" db:"media_refs"`
	LikerIDs        pq.StringArray `json:"likes" db:"liker_ids"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
}

// FeedPost - пост, обогащенный актуальными данными автора и разрешенными URL
type FeedPost struct {
	Post
	AuthorAvatarURL string   `json:"profilePic"`
	MediaURLs       []string `json:"media"`
}

// Profile - профиль пользователя с разрешенными URL и его постами
type Profile struct {
	User      User       `json:"user"`
	AvatarURL string     `json:"profilePic"`
	BannerURL string     `json:"bannerImage"`
	Posts     []FeedPost `json:"posts,omitempty"`
}
