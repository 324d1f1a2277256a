package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewStore(rdb, "ss", time.Hour, true)
}

func TestResolveCreatesAnonymousSession(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	sess, created, err := store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !created {
		t.Fatal("expected a fresh session for an empty id")
	}
	if sess.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if sess.Bound() {
		t.Fatal("expected fresh session to be anonymous")
	}
	if sess.CSRFToken() == "" {
		t.Fatal("expected a CSRF token on a fresh session")
	}
}

func TestResolveReturnsExistingSession(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	first, _, err := store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := store.Bind(ctx, first, BindingShopper, "u1"); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	second, created, err := store.Resolve(ctx, first.SessionID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if created {
		t.Fatal("expected existing session to be found")
	}
	if second.Kind != BindingShopper || second.PrincipalRef != "u1" {
		t.Fatalf("expected shopper binding to survive a round trip, got kind=%d ref=%q", second.Kind, second.PrincipalRef)
	}
	if second.CSRFToken() != first.CSRFToken() {
		t.Fatal("expected CSRF token to be stable across requests")
	}
}

func TestResolveInvalidOrExpiredIDCreatesFresh(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	sess, _, err := store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	replacement, created, err := store.Resolve(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("Resolve after expiry failed: %v", err)
	}
	if !created || replacement.SessionID == sess.SessionID {
		t.Fatal("expected an expired id to yield a fresh session")
	}

	garbled, created, err := store.Resolve(ctx, "!!not-base64url!!")
	if err != nil {
		t.Fatalf("Resolve with garbage id failed: %v", err)
	}
	if !created || garbled.SessionID == "" {
		t.Fatal("expected a malformed id to yield a fresh session")
	}
}

func TestBindReplacesPriorBinding(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	sess, _, err := store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if err := store.Bind(ctx, sess, BindingShopper, "u1"); err != nil {
		t.Fatalf("Bind shopper failed: %v", err)
	}
	if err := store.Bind(ctx, sess, BindingAdmin, "a9"); err != nil {
		t.Fatalf("Bind admin failed: %v", err)
	}

	got, _, err := store.Resolve(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Kind != BindingAdmin || got.PrincipalRef != "a9" {
		t.Fatalf("expected last binding to win, got kind=%d ref=%q", got.Kind, got.PrincipalRef)
	}
}

func TestDestroyRemovesSession(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	sess, _, err := store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := store.Destroy(ctx, sess.SessionID); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	_, created, err := store.Resolve(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !created {
		t.Fatal("expected destroyed session id to resolve to a fresh session")
	}

	// Destroy is idempotent.
	if err := store.Destroy(ctx, sess.SessionID); err != nil {
		t.Fatalf("second Destroy failed: %v", err)
	}
}

func TestPushFlashToDeadSessionDoesNotResurrectIt(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	sess, _, err := store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := store.Destroy(ctx, sess.SessionID); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if err := store.PushFlash(ctx, sess, FlashError, "Something went wrong."); err != nil {
		t.Fatalf("PushFlash after destroy failed: %v", err)
	}
	if mr.Exists("ss:" + sess.SessionID) {
		t.Fatal("expected no session key to be recreated by the push")
	}

	// The expired case behaves the same.
	sess, _, err = store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	mr.FastForward(2 * time.Hour)
	if err := store.PushFlash(ctx, sess, FlashSuccess, "Email sent!"); err != nil {
		t.Fatalf("PushFlash after expiry failed: %v", err)
	}
	if mr.Exists("ss:" + sess.SessionID) {
		t.Fatal("expected the expired key to stay gone")
	}
}

func TestFlashDrainIsOneShot(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	sess, _, err := store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if err := store.PushFlash(ctx, sess, FlashError, "first"); err != nil {
		t.Fatalf("PushFlash failed: %v", err)
	}
	if err := store.PushFlash(ctx, sess, FlashError, "second"); err != nil {
		t.Fatalf("PushFlash failed: %v", err)
	}
	if err := store.PushFlash(ctx, sess, FlashSuccess, "done"); err != nil {
		t.Fatalf("PushFlash failed: %v", err)
	}

	msgs, err := store.DrainFlash(ctx, sess.SessionID, FlashError)
	if err != nil {
		t.Fatalf("DrainFlash failed: %v", err)
	}
	if len(msgs) != 2 || msgs[0] != "first" || msgs[1] != "second" {
		t.Fatalf("expected queued error messages in order, got %v", msgs)
	}

	again, err := store.DrainFlash(ctx, sess.SessionID, FlashError)
	if err != nil {
		t.Fatalf("second DrainFlash failed: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected second drain to be empty, got %v", again)
	}

	// The other category is untouched.
	success, err := store.DrainFlash(ctx, sess.SessionID, FlashSuccess)
	if err != nil {
		t.Fatalf("DrainFlash success failed: %v", err)
	}
	if len(success) != 1 || success[0] != "done" {
		t.Fatalf("expected success queue to survive error drain, got %v", success)
	}
}

func TestFlashRejectsUnknownCategory(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	sess, _, err := store.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if err := store.PushFlash(ctx, sess, "info", "nope"); err != ErrUnknownFlashCategory {
		t.Fatalf("expected ErrUnknownFlashCategory from push, got %v", err)
	}
	if _, err := store.DrainFlash(ctx, sess.SessionID, "warning"); err != ErrUnknownFlashCategory {
		t.Fatalf("expected ErrUnknownFlashCategory from drain, got %v", err)
	}
}

func TestDrainFlashOnMissingSession(t *testing.T) {
	_, store := newTestStore(t)

	msgs, err := store.DrainFlash(context.Background(), "does-not-exist", FlashError)
	if err != nil {
		t.Fatalf("DrainFlash on missing session failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no messages for a missing session, got %v", msgs)
	}
}
