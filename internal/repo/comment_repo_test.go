package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateComment_And_List(t *testing.T) {
	db := newRepoDB(t, true)
	owner := seedUser(t, db, "uploader")
	talker := seedUser(t, db, "talker")
	v := seedVideo(t, db, owner.ID, "clip", true)

	first, err := CreateComment(context.Background(), db, v.ID, talker.ID, "first!")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	time.Sleep(2 * time.Millisecond) // keep created_at ordering deterministic
	second, err := CreateComment(context.Background(), db, v.ID, owner.ID, "thanks")
	if err != nil {
		t.Fatalf("CreateComment 2: %v", err)
	}
	mustLike(t, db, owner.ID, LikeComment, first.ID)

	n, err := CountVideoComments(context.Background(), db, v.ID)
	if err != nil || n != 2 {
		t.Fatalf("count: n=%d err=%v", n, err)
	}

	page, err := ListVideoCommentsPage(context.Background(), db, owner.ID, v.ID, 0, 10)
	if err != nil {
		t.Fatalf("ListVideoCommentsPage: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(page))
	}
	// Newest first.
	if page[0].ID != second.ID || page[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", page)
	}
	if page[1].LikesCount != 1 || !page[1].IsLiked {
		t.Fatalf("derived fields wrong on first comment: %+v", page[1])
	}
	if page[1].Owner.Username != "talker" {
		t.Fatalf("owner projection wrong: %+v", page[1].Owner)
	}
}

func TestUpdateCommentContent(t *testing.T) {
	db := newRepoDB(t, true)
	u := seedUser(t, db, "edit")
	v := seedVideo(t, db, u.ID, "clip", true)
	c, _ := CreateComment(context.Background(), db, v.ID, u.ID, "tpyo")

	if err := UpdateCommentContent(context.Background(), db, c.ID, "typo"); err != nil {
		t.Fatalf("UpdateCommentContent: %v", err)
	}
	got, _ := GetComment(context.Background(), db, c.ID)
	if got.Content != "typo" {
		t.Fatalf("content not updated: %+v", got)
	}
	if err := UpdateCommentContent(context.Background(), db, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCommentsByVideo_Cascade(t *testing.T) {
	db := newRepoDB(t, true)
	u := seedUser(t, db, "cascade")
	v := seedVideo(t, db, u.ID, "clip", true)
	keepV := seedVideo(t, db, u.ID, "other", true)

	CreateComment(context.Background(), db, v.ID, u.ID, "a")
	CreateComment(context.Background(), db, v.ID, u.ID, "b")
	kept, _ := CreateComment(context.Background(), db, keepV.ID, u.ID, "keep")

	if err := DeleteCommentsByVideo(context.Background(), db, v.ID); err != nil {
		t.Fatalf("DeleteCommentsByVideo: %v", err)
	}
	n, _ := CountVideoComments(context.Background(), db, v.ID)
	if n != 0 {
		t.Fatalf("expected 0 remaining, got %d", n)
	}
	if _, err := GetComment(context.Background(), db, kept.ID); err != nil {
		t.Fatalf("comment on other video must survive: %v", err)
	}
}
