// Package domain defines the persistence models for users, videos, comments,
// tweets, engagement edges (likes, subscriptions), playlists, and watch
// history. These types are mapped with GORM and form the core data layer of
// the video-sharing application.
package domain

import (
	"time"
)

// Image references an asset stored on the external media host. Only the URL
// is exposed to clients; the public id is kept for later deletion.
type Image struct {
	URL      string `json:"url"       gorm:"type:varchar(512)"`
	PublicID string `json:"-"         gorm:"type:varchar(160)"`
}

// User is the identity record. Username and email are stored case-folded and
// are globally unique. The password hash and the currently active refresh
// token are never serialized to JSON.
//
// RefreshToken holds the single live refresh credential for the account:
// it is overwritten on login and rotation and cleared on logout, which is
// what invalidates previously issued refresh tokens.
type User struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string    `json:"email"      gorm:"type:varchar(254);not null;uniqueIndex"`
	FullName     string    `json:"fullName"   gorm:"type:varchar(128);not null;index"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(128);not null"`
	Avatar       Image     `json:"avatar"     gorm:"embedded;embeddedPrefix:avatar_"`
	CoverImage   Image     `json:"coverImage" gorm:"embedded;embeddedPrefix:cover_"`
	RefreshToken string    `json:"-"          gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Video is an uploaded video with its hosted file, thumbnail, and publish
// state. Views are incremented with a single atomic UPDATE when the video is
// fetched. Unpublished videos are visible only through the owner dashboard.
type Video struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	OwnerID     string    `json:"owner"       gorm:"type:char(36);not null;index"`
	VideoFile   Image     `json:"videoFile"   gorm:"embedded;embeddedPrefix:video_"`
	Thumbnail   Image     `json:"thumbnail"   gorm:"embedded;embeddedPrefix:thumb_"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Duration    float64   `json:"duration"    gorm:"not null"`
	Views       int64     `json:"views"       gorm:"not null;default:0"`
	IsPublished bool      `json:"isPublished" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Video.
func (Video) TableName() string { return "videos" }

// Comment is a user comment attached to a video.
type Comment struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	VideoID   string    `json:"video"     gorm:"type:char(36);not null;index"`
	OwnerID   string    `json:"owner"     gorm:"type:char(36);not null;index"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Video Video `json:"-" gorm:"foreignKey:VideoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Owner User  `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Tweet is a short status post by a user, independent of any video.
type Tweet struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	OwnerID   string    `json:"owner"     gorm:"type:char(36);not null;index"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Tweet.
func (Tweet) TableName() string { return "tweets" }

// Like is an existence-based engagement edge: exactly one of VideoID,
// CommentID, or TweetID is set. A user can hold at most one like per target;
// the partial unique indexes below enforce the toggle semantics the service
// layer relies on.
type Like struct {
	ID        string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	LikedByID string    `json:"likedBy"             gorm:"type:char(36);not null;index;uniqueIndex:ux_like_video;uniqueIndex:ux_like_comment;uniqueIndex:ux_like_tweet"`
	VideoID   *string   `json:"video,omitempty"     gorm:"type:char(36);index;uniqueIndex:ux_like_video,where:video_id IS NOT NULL"`
	CommentID *string   `json:"comment,omitempty"   gorm:"type:char(36);index;uniqueIndex:ux_like_comment,where:comment_id IS NOT NULL"`
	TweetID   *string   `json:"tweet,omitempty"     gorm:"type:char(36);index;uniqueIndex:ux_like_tweet,where:tweet_id IS NOT NULL"`
	CreatedAt time.Time `json:"createdAt"`

	LikedBy User `json:"-" gorm:"foreignKey:LikedByID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string { return "likes" }

// Subscription links a subscriber to a channel (both are users). The pair is
// unique: subscribing is a toggle, not a counter.
type Subscription struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	SubscriberID string    `json:"subscriber" gorm:"type:char(36);not null;index;uniqueIndex:ux_sub_pair"`
	ChannelID    string    `json:"channel"    gorm:"type:char(36);not null;index;uniqueIndex:ux_sub_pair"`
	CreatedAt    time.Time `json:"createdAt"`

	Subscriber User `json:"-" gorm:"foreignKey:SubscriberID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Channel    User `json:"-" gorm:"foreignKey:ChannelID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Subscription.
func (Subscription) TableName() string { return "subscriptions" }

// Playlist is a named, ordered collection of videos owned by a user.
type Playlist struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	OwnerID     string    `json:"owner"       gorm:"type:char(36);not null;index"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Playlist.
func (Playlist) TableName() string { return "playlists" }

// PlaylistVideo is the membership row linking a video into a playlist.
// Adding the same video twice is a no-op at the schema level.
type PlaylistVideo struct {
	ID         string    `json:"id"         gorm:"type:char(36);primaryKey"`
	PlaylistID string    `json:"playlist"   gorm:"type:char(36);not null;index;uniqueIndex:ux_playlist_video"`
	VideoID    string    `json:"video"      gorm:"type:char(36);not null;index;uniqueIndex:ux_playlist_video"`
	AddedAt    time.Time `json:"addedAt"`

	Playlist Playlist `json:"-" gorm:"foreignKey:PlaylistID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Video    Video    `json:"-" gorm:"foreignKey:VideoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for PlaylistVideo.
func (PlaylistVideo) TableName() string { return "playlist_videos" }

// WatchHistoryEntry records that a user watched a video. Re-watching updates
// WatchedAt instead of inserting a second row (set semantics).
type WatchHistoryEntry struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user"      gorm:"type:char(36);not null;index;uniqueIndex:ux_history_pair"`
	VideoID   string    `json:"video"     gorm:"type:char(36);not null;index;uniqueIndex:ux_history_pair"`
	WatchedAt time.Time `json:"watchedAt" gorm:"index"`

	User  User  `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Video Video `json:"-" gorm:"foreignKey:VideoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for WatchHistoryEntry.
func (WatchHistoryEntry) TableName() string { return "watch_history" }
