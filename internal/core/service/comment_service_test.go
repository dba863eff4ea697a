package service

import (
	"context"
	"errors"
	"testing"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

func newCommentFixture() (*memStore, *CommentService) {
	store := newMemStore()
	svc := NewCommentService(&memVideoRepo{store}, &memCommentRepo{store}, discardLogger)
	return store, svc
}

func TestAddComment_TopLevel(t *testing.T) {
	store, svc := newCommentFixture()
	creator := store.addUser(domain.RoleCreator, 0)
	viewer := store.addUser(domain.RoleViewer, 20)
	video := store.addVideo(creator.ID, 0)

	comment, err := svc.Add(context.Background(), principalFor(viewer), ports.AddCommentInput{
		VideoID: video.ID,
		Content: "great video",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.ID == "" {
		t.Error("expected an assigned id")
	}
	if comment.UserID != viewer.ID {
		t.Errorf("expected author %s, got %s", viewer.ID, comment.UserID)
	}
	if comment.ParentID != "" {
		t.Errorf("top-level comment must have no parent, got %q", comment.ParentID)
	}
}

func TestAddComment_UnknownVideo(t *testing.T) {
	store, svc := newCommentFixture()
	viewer := store.addUser(domain.RoleViewer, 20)

	_, err := svc.Add(context.Background(), principalFor(viewer), ports.AddCommentInput{VideoID: "missing", Content: "hi"})
	if !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestAddComment_ReplyToUnknownParent(t *testing.T) {
	store, svc := newCommentFixture()
	creator := store.addUser(domain.RoleCreator, 0)
	viewer := store.addUser(domain.RoleViewer, 20)
	video := store.addVideo(creator.ID, 0)

	_, err := svc.Add(context.Background(), principalFor(viewer), ports.AddCommentInput{
		VideoID:  video.ID,
		ParentID: "missing",
		Content:  "reply",
	})
	if !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestAddComment_ReplyAcrossVideosRejected(t *testing.T) {
	store, svc := newCommentFixture()
	creator := store.addUser(domain.RoleCreator, 0)
	viewer := store.addUser(domain.RoleViewer, 20)
	v1 := store.addVideo(creator.ID, 0)
	v2 := store.addVideo(creator.ID, 0)

	parent, err := svc.Add(context.Background(), principalFor(viewer), ports.AddCommentInput{VideoID: v1.ID, Content: "on v1"})
	if err != nil {
		t.Fatalf("parent: %v", err)
	}

	_, err = svc.Add(context.Background(), principalFor(viewer), ports.AddCommentInput{
		VideoID:  v2.ID,
		ParentID: parent.ID,
		Content:  "cross-video reply",
	})
	if !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestListThreads_NestsReplies(t *testing.T) {
	store, svc := newCommentFixture()
	creator := store.addUser(domain.RoleCreator, 0)
	viewer := store.addUser(domain.RoleViewer, 20)
	video := store.addVideo(creator.ID, 0)

	first, err := svc.Add(context.Background(), principalFor(viewer), ports.AddCommentInput{VideoID: video.ID, Content: "first"})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	reply, err := svc.Add(context.Background(), principalFor(creator), ports.AddCommentInput{VideoID: video.ID, ParentID: first.ID, Content: "thanks"})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if _, err := svc.Add(context.Background(), principalFor(viewer), ports.AddCommentInput{VideoID: video.ID, ParentID: reply.ID, Content: "welcome"}); err != nil {
		t.Fatalf("nested reply: %v", err)
	}
	if _, err := svc.Add(context.Background(), principalFor(viewer), ports.AddCommentInput{VideoID: video.ID, Content: "second"}); err != nil {
		t.Fatalf("second: %v", err)
	}

	threads, err := svc.ListThreads(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 top-level threads, got %d", len(threads))
	}
	if threads[0].Comment.Content != "first" {
		t.Errorf("expected oldest thread first, got %q", threads[0].Comment.Content)
	}
	if len(threads[0].Replies) != 1 {
		t.Fatalf("expected 1 reply on the first thread, got %d", len(threads[0].Replies))
	}
	if len(threads[0].Replies[0].Replies) != 1 {
		t.Fatalf("expected the reply to carry its own nested reply, got %d", len(threads[0].Replies[0].Replies))
	}
	if len(threads[1].Replies) != 0 {
		t.Errorf("second thread must have no replies, got %d", len(threads[1].Replies))
	}
}

func TestListThreads_UnknownVideo(t *testing.T) {
	_, svc := newCommentFixture()

	_, err := svc.ListThreads(context.Background(), "missing")
	if !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}
