package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/streamhub/go-video-backend/internal/domain"
)

func TestCreateVideo_And_Get(t *testing.T) {
	db := newRepoDB(t, true)
	owner := seedUser(t, db, "maker")

	v, err := CreateVideo(context.Background(), db, &domain.Video{
		OwnerID:     owner.ID,
		Title:       "First",
		Description: "d",
		Duration:    3.2,
		VideoFile:   domain.Image{URL: "http://cdn/v.mp4", PublicID: "v1"},
		Thumbnail:   domain.Image{URL: "http://cdn/t.png", PublicID: "t1"},
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if v.ID == "" {
		t.Fatal("expected assigned ID")
	}

	got, err := GetVideo(context.Background(), db, v.ID)
	if err != nil || got.Title != "First" {
		t.Fatalf("GetVideo: video=%+v err=%v", got, err)
	}
	if _, err := GetVideo(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListVideosPage_FiltersAndSort(t *testing.T) {
	db := newRepoDB(t, true)
	a := seedUser(t, db, "anna")
	b := seedUser(t, db, "ben")

	seedVideo(t, db, a.ID, "Go tutorial", true)
	seedVideo(t, db, a.ID, "Cooking show", true)
	seedVideo(t, db, a.ID, "Hidden draft", false) // unpublished, never listed
	seedVideo(t, db, b.ID, "Go talk", true)

	// Free-text search over title and description.
	f := VideoFilter{Query: "go"}
	n, err := CountVideos(context.Background(), db, f)
	if err != nil || n != 2 {
		t.Fatalf("search count: n=%d err=%v", n, err)
	}

	// Owner filter.
	f = VideoFilter{OwnerID: a.ID}
	items, err := ListVideosPage(context.Background(), db, f, 0, 10)
	if err != nil {
		t.Fatalf("ListVideosPage: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 published videos for anna, got %d", len(items))
	}
	for _, it := range items {
		if it.Owner.Username != "anna" {
			t.Fatalf("owner projection wrong: %+v", it.Owner)
		}
	}

	// Unknown sort columns fall back to created_at instead of injecting.
	f = VideoFilter{SortBy: "password_hash; DROP TABLE users", SortDesc: true}
	if _, err := ListVideosPage(context.Background(), db, f, 0, 10); err != nil {
		t.Fatalf("whitelisted sort fallback: %v", err)
	}
	if !db.Migrator().HasTable(&domain.User{}) {
		t.Fatal("users table must survive hostile sort input")
	}
}

func TestListVideosPage_OutOfRangeIsEmptyNotError(t *testing.T) {
	db := newRepoDB(t, true)
	u := seedUser(t, db, "solo")
	seedVideo(t, db, u.ID, "only one", true)

	items, err := ListVideosPage(context.Background(), db, VideoFilter{}, 100, 10)
	if err != nil {
		t.Fatalf("ListVideosPage: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestGetVideoView_DerivedFields(t *testing.T) {
	db := newRepoDB(t, true)
	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	other := seedUser(t, db, "other")
	v := seedVideo(t, db, owner.ID, "watched", true)

	mustLike(t, db, fan.ID, LikeVideo, v.ID)
	mustLike(t, db, other.ID, LikeVideo, v.ID)
	mustSubscribe(t, db, fan.ID, owner.ID)

	view, err := GetVideoView(context.Background(), db, fan.ID, v.ID)
	if err != nil {
		t.Fatalf("GetVideoView: %v", err)
	}
	if view.LikesCount != 2 || !view.IsLiked {
		t.Fatalf("like fields wrong: %+v", view)
	}
	if view.Owner.Username != "owner" || view.Owner.SubscribersCount != 1 || !view.Owner.IsSubscribed {
		t.Fatalf("owner block wrong: %+v", view.Owner)
	}

	// Membership flags are per viewer: other liked but never subscribed.
	view, err = GetVideoView(context.Background(), db, other.ID, v.ID)
	if err != nil {
		t.Fatalf("GetVideoView other: %v", err)
	}
	if !view.IsLiked {
		t.Fatalf("other liked the video: %+v", view)
	}
	if view.Owner.IsSubscribed {
		t.Fatalf("other is not subscribed: %+v", view.Owner)
	}
}

func TestIncrementViews_Atomic(t *testing.T) {
	db := newRepoDB(t, true)
	u := seedUser(t, db, "v")
	v := seedVideo(t, db, u.ID, "counted", true)

	for i := 0; i < 3; i++ {
		if err := IncrementViews(context.Background(), db, v.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	got, _ := GetVideo(context.Background(), db, v.ID)
	if got.Views != 3 {
		t.Fatalf("expected 3 views, got %d", got.Views)
	}
}

func TestSetPublished_Toggle(t *testing.T) {
	db := newRepoDB(t, true)
	u := seedUser(t, db, "p")
	v := seedVideo(t, db, u.ID, "draft", false)

	if err := SetPublished(context.Background(), db, v.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, _ := GetVideo(context.Background(), db, v.ID)
	if !got.IsPublished {
		t.Fatal("expected published")
	}
	if err := SetPublished(context.Background(), db, v.ID, false); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	got, _ = GetVideo(context.Background(), db, v.ID)
	if got.IsPublished {
		t.Fatal("expected unpublished")
	}
}

func TestDeleteVideo(t *testing.T) {
	db := newRepoDB(t, true)
	u := seedUser(t, db, "d")
	v := seedVideo(t, db, u.ID, "gone", true)

	if err := DeleteVideo(context.Background(), db, v.ID); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	if _, err := GetVideo(context.Background(), db, v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteVideo(context.Background(), db, v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
