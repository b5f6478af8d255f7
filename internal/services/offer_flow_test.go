package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"offerkit/internal/domain"
	"offerkit/internal/repos"
	"offerkit/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE users(id TEXT PRIMARY KEY, email TEXT UNIQUE, name TEXT, password_hash TEXT,
	  role TEXT, plan TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE sessions(id TEXT PRIMARY KEY, user_id TEXT, created_at TEXT, last_seen TEXT);
	CREATE TABLE offers(id TEXT PRIMARY KEY, user_id TEXT, name TEXT, niche TEXT, audience TEXT,
	  main_problem TEXT, desired_outcome TEXT, bonuses TEXT, offer_type TEXT,
	  sessions_count INTEGER, session_length_mins INTEGER,
	  includes_replays INTEGER, has_group_chat INTEGER, is_first_paid_offer INTEGER,
	  host_platform TEXT, host_platform_other TEXT, experience_level TEXT, audience_size TEXT,
	  price NUMERIC, currency TEXT, status TEXT, created_at TEXT);

	INSERT INTO users(id,email,name,password_hash,role,plan)
	  VALUES ('u-free','free@t.test','Free','x','USER','FREE'),
	         ('u-pro','pro@t.test','Pro','x','USER','PRO');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func freeUser() *domain.User { return &domain.User{ID: "u-free", Role: "USER", Plan: "FREE"} }
func proUser() *domain.User  { return &domain.User{ID: "u-pro", Role: "USER", Plan: "PRO"} }

func TestWizardFlow_CaptureFinalizeSave(t *testing.T) {
	db := memdb(t)
	svc := services.NewOfferService(repos.NewOfferRepo(db))
	sid := "sess-1"
	u := freeUser()

	if err := svc.StartWizard(sid, u); err != nil {
		t.Fatal(err)
	}
	w, err := svc.Wizard(sid)
	if err != nil {
		t.Fatal(err)
	}
	w.SetName("Launch Lab")
	w.SetOfferType("program")
	w.SetSessionsCount("4")
	w.SetSessionLength("60")
	w.SetReplays(true)
	w.SetPrice("199")

	o, err := svc.FinishWizard(sid, u)
	if err != nil {
		t.Fatal(err)
	}
	if o.ID == "" || o.Name != "Launch Lab" {
		t.Fatalf("bad finalized offer: %+v", o)
	}

	// persisted under the user
	got, err := svc.GetOwned(o.ID, u)
	if err != nil {
		t.Fatal(err)
	}
	if got.OfferType != domain.OfferProgram || got.SessionsCount != 4 || !got.IncludesReplays {
		t.Fatalf("stored offer lost fields: %+v", got)
	}

	// wizard session is spent
	if _, err := svc.Wizard(sid); !errors.Is(err, services.ErrNoWizard) {
		t.Fatalf("wizard should be retired after finish, got %v", err)
	}

	// generated copy flows from the stored record
	doc := svc.Document(got)
	if doc == "" {
		t.Fatal("empty document")
	}
}

func TestWizardFlow_CancelDropsDraft(t *testing.T) {
	db := memdb(t)
	svc := services.NewOfferService(repos.NewOfferRepo(db))
	sid := "sess-2"

	if err := svc.StartWizard(sid, freeUser()); err != nil {
		t.Fatal(err)
	}
	svc.CancelWizard(sid)
	if _, err := svc.Wizard(sid); !errors.Is(err, services.ErrNoWizard) {
		t.Fatalf("want ErrNoWizard after cancel, got %v", err)
	}
	if n, _ := svc.Offers.CountByUser("u-free"); n != 0 {
		t.Fatalf("cancel must not persist anything, got %d offers", n)
	}
}

// A persistence outage during finish must not strand the draft: once the
// store recovers, finishing the same wizard session succeeds.
func TestFinishRetriesAfterInsertFailure(t *testing.T) {
	db := memdb(t)
	svc := services.NewOfferService(repos.NewOfferRepo(db))
	sid := "sess-retry"
	u := freeUser()

	if err := svc.StartWizard(sid, u); err != nil {
		t.Fatal(err)
	}
	w, err := svc.Wizard(sid)
	if err != nil {
		t.Fatal(err)
	}
	w.SetName("Launch Lab")

	// simulate an outage
	if _, err := db.Exec(`ALTER TABLE offers RENAME TO offers_down`); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.FinishWizard(sid, u); err == nil {
		t.Fatal("finish should fail while the store is down")
	}

	// draft is still there, untouched
	if w2, err := svc.Wizard(sid); err != nil || w2.Draft().Name != "Launch Lab" {
		t.Fatalf("draft lost after failed finish: %v", err)
	}

	// store recovers; the same session finishes cleanly
	if _, err := db.Exec(`ALTER TABLE offers_down RENAME TO offers`); err != nil {
		t.Fatal(err)
	}
	o, err := svc.FinishWizard(sid, u)
	if err != nil {
		t.Fatalf("finish after recovery failed: %v", err)
	}
	if got, err := svc.GetOwned(o.ID, u); err != nil || got.Name != "Launch Lab" {
		t.Fatalf("recovered finish did not persist: %v", err)
	}
}

func TestPlanGating(t *testing.T) {
	db := memdb(t)
	svc := services.NewOfferService(repos.NewOfferRepo(db))
	u := freeUser()

	for i := 0; i < services.FreeOfferLimit; i++ {
		sid := "sess-free"
		if err := svc.StartWizard(sid, u); err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		if _, err := svc.FinishWizard(sid, u); err != nil {
			t.Fatalf("finish %d: %v", i, err)
		}
	}

	// free user is now capped
	if err := svc.StartWizard("sess-free", u); !errors.Is(err, services.ErrPlanLimit) {
		t.Fatalf("want ErrPlanLimit, got %v", err)
	}

	// pro user is not
	for i := 0; i < services.FreeOfferLimit+2; i++ {
		sid := "sess-pro"
		if err := svc.StartWizard(sid, proUser()); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.FinishWizard(sid, proUser()); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGetOwnedEnforcesOwnership(t *testing.T) {
	db := memdb(t)
	svc := services.NewOfferService(repos.NewOfferRepo(db))
	sid := "sess-3"

	if err := svc.StartWizard(sid, freeUser()); err != nil {
		t.Fatal(err)
	}
	o, err := svc.FinishWizard(sid, freeUser())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetOwned(o.ID, proUser()); err == nil {
		t.Fatal("other users must not read the offer")
	}
	admin := &domain.User{ID: "u-x", Role: "ADMIN", Plan: "PRO"}
	if _, err := svc.GetOwned(o.ID, admin); err != nil {
		t.Fatalf("admin should read any offer: %v", err)
	}
}
