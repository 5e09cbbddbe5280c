package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTweetLifecycle(t *testing.T) {
	db := newRepoDB(t, true)
	u := seedUser(t, db, "poster")
	fan := seedUser(t, db, "fan")

	first, err := CreateTweet(context.Background(), db, u.ID, "hello world")
	if err != nil {
		t.Fatalf("CreateTweet: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := CreateTweet(context.Background(), db, u.ID, "second post")
	if err != nil {
		t.Fatalf("CreateTweet 2: %v", err)
	}
	mustLike(t, db, fan.ID, LikeTweet, first.ID)

	list, err := ListUserTweets(context.Background(), db, fan.ID, u.ID)
	if err != nil {
		t.Fatalf("ListUserTweets: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("unexpected listing: %+v", list)
	}
	if list[1].LikesCount != 1 || !list[1].IsLiked {
		t.Fatalf("derived fields wrong: %+v", list[1])
	}
	if list[0].Owner.Username != "poster" {
		t.Fatalf("owner projection wrong: %+v", list[0].Owner)
	}

	if err := UpdateTweetContent(context.Background(), db, first.ID, "edited"); err != nil {
		t.Fatalf("UpdateTweetContent: %v", err)
	}
	got, _ := GetTweet(context.Background(), db, first.ID)
	if got.Content != "edited" {
		t.Fatalf("content not updated: %+v", got)
	}

	if err := DeleteTweet(context.Background(), db, first.ID); err != nil {
		t.Fatalf("DeleteTweet: %v", err)
	}
	if _, err := GetTweet(context.Background(), db, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListUserTweets_EmptyIsNonNil(t *testing.T) {
	db := newRepoDB(t, true)
	u := seedUser(t, db, "quiet")

	list, err := ListUserTweets(context.Background(), db, u.ID, u.ID)
	if err != nil {
		t.Fatalf("ListUserTweets: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", list)
	}
}
