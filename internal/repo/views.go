// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file defines the projected read models produced by the
// aggregation-style queries: each view carries only the allow-listed output
// fields plus derived fields (counts, first-of-join collapses, viewer
// membership flags) computed in SQL.
package repo

import "time"

// OwnerView is the collapsed join of the owning user: the "first of" the
// owner lookup, projected down to public profile fields.
type OwnerView struct {
	ID        string `json:"id"       gorm:"column:owner_id"`
	Username  string `json:"username" gorm:"column:owner_username"`
	FullName  string `json:"fullName" gorm:"column:owner_full_name"`
	AvatarURL string `json:"avatar"   gorm:"column:owner_avatar_url"`
}

// CommentView is one comment in a video's comment listing.
type CommentView struct {
	ID         string    `json:"id"         gorm:"column:id"`
	Content    string    `json:"content"    gorm:"column:content"`
	CreatedAt  time.Time `json:"createdAt"  gorm:"column:created_at"`
	LikesCount int64     `json:"likesCount" gorm:"column:likes_count"`
	IsLiked    bool      `json:"isLiked"    gorm:"column:is_liked"`
	Owner      OwnerView `json:"owner"      gorm:"embedded"`
}

// TweetView is one tweet in a user's tweet listing.
type TweetView struct {
	ID         string    `json:"id"         gorm:"column:id"`
	Content    string    `json:"content"    gorm:"column:content"`
	CreatedAt  time.Time `json:"createdAt"  gorm:"column:created_at"`
	LikesCount int64     `json:"likesCount" gorm:"column:likes_count"`
	IsLiked    bool      `json:"isLiked"    gorm:"column:is_liked"`
	Owner      OwnerView `json:"ownerDetails" gorm:"embedded"`
}

// VideoListItem is one row of the public video listing.
type VideoListItem struct {
	ID           string    `json:"id"           gorm:"column:id"`
	Title        string    `json:"title"        gorm:"column:title"`
	Description  string    `json:"description"  gorm:"column:description"`
	ThumbnailURL string    `json:"thumbnail"    gorm:"column:thumb_url"`
	Duration     float64   `json:"duration"     gorm:"column:duration"`
	Views        int64     `json:"views"        gorm:"column:views"`
	CreatedAt    time.Time `json:"createdAt"    gorm:"column:created_at"`
	Owner        OwnerView `json:"ownerDetails" gorm:"embedded"`
}

// VideoOwnerView is the owner block of a single-video page, enriched with
// channel subscription data for the current viewer.
type VideoOwnerView struct {
	ID               string `json:"id"               gorm:"column:owner_id"`
	Username         string `json:"username"         gorm:"column:owner_username"`
	FullName         string `json:"fullName"         gorm:"column:owner_full_name"`
	AvatarURL        string `json:"avatar"           gorm:"column:owner_avatar_url"`
	SubscribersCount int64  `json:"subscribersCount" gorm:"column:subscribers_count"`
	IsSubscribed     bool   `json:"isSubscribed"     gorm:"column:is_subscribed"`
}

// VideoView is the full single-video projection.
type VideoView struct {
	ID          string         `json:"id"          gorm:"column:id"`
	VideoURL    string         `json:"videoFile"   gorm:"column:video_url"`
	Title       string         `json:"title"       gorm:"column:title"`
	Description string         `json:"description" gorm:"column:description"`
	Duration    float64        `json:"duration"    gorm:"column:duration"`
	Views       int64          `json:"views"       gorm:"column:views"`
	CreatedAt   time.Time      `json:"createdAt"   gorm:"column:created_at"`
	LikesCount  int64          `json:"likesCount"  gorm:"column:likes_count"`
	IsLiked     bool           `json:"isLiked"     gorm:"column:is_liked"`
	Owner       VideoOwnerView `json:"owner"       gorm:"embedded"`
}

// SubscriberView is one row of a channel's subscriber listing. The
// SubscribedToSubscriber flag reports whether the channel follows the
// subscriber back.
type SubscriberView struct {
	ID                     string `json:"id"                     gorm:"column:id"`
	Username               string `json:"username"               gorm:"column:username"`
	FullName               string `json:"fullName"               gorm:"column:full_name"`
	AvatarURL              string `json:"avatar"                 gorm:"column:avatar_url"`
	SubscribersCount       int64  `json:"subscribersCount"       gorm:"column:subscribers_count"`
	SubscribedToSubscriber bool   `json:"subscribedToSubscriber" gorm:"column:subscribed_to_subscriber"`
}

// LatestVideoView is the newest upload of a subscribed channel.
type LatestVideoView struct {
	ID           string    `json:"id"        gorm:"column:latest_video_id"`
	VideoURL     string    `json:"videoFile" gorm:"column:latest_video_url"`
	ThumbnailURL string    `json:"thumbnail" gorm:"column:latest_thumb_url"`
	Title        string    `json:"title"     gorm:"column:latest_title"`
	Description  string    `json:"description" gorm:"column:latest_description"`
	Duration     float64   `json:"duration"  gorm:"column:latest_duration"`
	Views        int64     `json:"views"     gorm:"column:latest_views"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:latest_created_at"`
}

// SubscribedChannelView is one row of a user's subscription listing.
type SubscribedChannelView struct {
	ID          string           `json:"id"        gorm:"column:id"`
	Username    string           `json:"username"  gorm:"column:username"`
	FullName    string           `json:"fullName"  gorm:"column:full_name"`
	AvatarURL   string           `json:"avatar"    gorm:"column:avatar_url"`
	LatestVideo *LatestVideoView `json:"latestVideo,omitempty" gorm:"-"`
}

// ChannelProfileView is the aggregated channel page for a username.
type ChannelProfileView struct {
	ID                string `json:"id"                gorm:"column:id"`
	Username          string `json:"username"          gorm:"column:username"`
	FullName          string `json:"fullName"          gorm:"column:full_name"`
	Email             string `json:"email"             gorm:"column:email"`
	AvatarURL         string `json:"avatar"            gorm:"column:avatar_url"`
	CoverImageURL     string `json:"coverImage"        gorm:"column:cover_url"`
	SubscribersCount  int64  `json:"subscribersCount"  gorm:"column:subscribers_count"`
	SubscribedToCount int64  `json:"channelsSubscribedToCount" gorm:"column:subscribed_to_count"`
	IsSubscribed      bool   `json:"isSubscribed"      gorm:"column:is_subscribed"`
}

// WatchHistoryItem is one row of a user's watch history, newest first.
type WatchHistoryItem struct {
	ID           string    `json:"id"        gorm:"column:id"`
	Title        string    `json:"title"     gorm:"column:title"`
	ThumbnailURL string    `json:"thumbnail" gorm:"column:thumb_url"`
	Duration     float64   `json:"duration"  gorm:"column:duration"`
	Views        int64     `json:"views"     gorm:"column:views"`
	WatchedAt    time.Time `json:"watchedAt" gorm:"column:watched_at"`
	Owner        OwnerView `json:"owner"     gorm:"embedded"`
}

// LikedVideoView is one row of the "videos I liked" listing.
type LikedVideoView struct {
	ID           string    `json:"id"        gorm:"column:id"`
	Title        string    `json:"title"     gorm:"column:title"`
	ThumbnailURL string    `json:"thumbnail" gorm:"column:thumb_url"`
	Duration     float64   `json:"duration"  gorm:"column:duration"`
	Views        int64     `json:"views"     gorm:"column:views"`
	LikedAt      time.Time `json:"likedAt"   gorm:"column:liked_at"`
	Owner        OwnerView `json:"owner"     gorm:"embedded"`
}

// DashboardVideoItem is one row of the owner dashboard's video listing;
// unpublished videos are included there.
type DashboardVideoItem struct {
	ID           string    `json:"id"          gorm:"column:id"`
	Title        string    `json:"title"       gorm:"column:title"`
	ThumbnailURL string    `json:"thumbnail"   gorm:"column:thumb_url"`
	Views        int64     `json:"views"       gorm:"column:views"`
	IsPublished  bool      `json:"isPublished" gorm:"column:is_published"`
	LikesCount   int64     `json:"likesCount"  gorm:"column:likes_count"`
	CreatedAt    time.Time `json:"createdAt"   gorm:"column:created_at"`
}

// ChannelStatsView is the aggregate block of the owner dashboard.
type ChannelStatsView struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

// PlaylistVideoItem is one video row inside a playlist view.
type PlaylistVideoItem struct {
	ID           string    `json:"id"        gorm:"column:id"`
	Title        string    `json:"title"     gorm:"column:title"`
	ThumbnailURL string    `json:"thumbnail" gorm:"column:thumb_url"`
	Duration     float64   `json:"duration"  gorm:"column:duration"`
	Views        int64     `json:"views"     gorm:"column:views"`
	AddedAt      time.Time `json:"addedAt"   gorm:"column:added_at"`
}
