package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"offerkit/internal/config"
	"offerkit/internal/http/handlers"
	"offerkit/internal/repos"
	"offerkit/internal/services"
)

// wizardApp builds a minimal app with the wizard and offer routes and a
// pre-bound session for the seeded FREE user. CSRF middleware is omitted
// here; it has its own coverage in the auth tests.
func wizardApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	sid := "sid-wizard-test"
	if err := userRepo.BindSession(sid, "u-maya"); err != nil {
		t.Fatalf("bind session: %v", err)
	}

	cfg := config.Config{ExportDir: t.TempDir()}
	deps := handlers.NewDeps(db, cfg, authSvc)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	app.Get("/", handlers.RequireUser(authSvc), deps.OfferHandler.Home)
	app.Get("/offers/new", handlers.RequireUser(authSvc), deps.WizardHandler.Start)
	app.Get("/offers/wizard", handlers.RequireUser(authSvc), deps.WizardHandler.Show)
	app.Post("/offers/wizard", handlers.RequireUser(authSvc), deps.WizardHandler.Submit)
	app.Get("/offers/:id", handlers.RequireUser(authSvc), deps.OfferHandler.Detail)
	app.Get("/offers/:id/copy.txt", handlers.RequireUser(authSvc), deps.OfferHandler.CopyText)
	return app, sid
}

func get(t *testing.T, app *fiber.App, sid, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func post(t *testing.T, app *fiber.App, sid, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestWizardEndToEnd(t *testing.T) {
	app, sid := wizardApp(t)

	// start
	resp := get(t, app, sid, "/offers/new")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("start should redirect to the wizard, got %d", resp.StatusCode)
	}

	// step 1
	resp = get(t, app, sid, "/offers/wizard")
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || !strings.Contains(string(body), "Step 1 of 4") {
		t.Fatalf("wizard step 1 not shown: %d\n%s", resp.StatusCode, body)
	}

	steps := []url.Values{
		{"name": {"Paint With Confidence"}, "niche": {"watercolor"}, "offer_type": {"workshop"}, "nav": {"next"}},
		{"audience": {"weekend painters"}, "main_problem": {"too many tutorials"}, "desired_outcome": {"a finished piece"}, "nav": {"next"}},
		{"sessions_count": {"3"}, "session_length": {"90"}, "includes_replays": {"on"}, "host_platform": {"stan"}, "nav": {"next"}},
	}
	for i, form := range steps {
		if resp := post(t, app, sid, "/offers/wizard", form); resp.StatusCode != http.StatusFound {
			t.Fatalf("step %d submit failed: %d", i+1, resp.StatusCode)
		}
	}

	// finish on step 4
	resp = post(t, app, sid, "/offers/wizard", url.Values{
		"experience_level": {"beginner"}, "audience_size": {"small"},
		"price": {"97.4"}, "currency": {"$"}, "nav": {"finish"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("finish should redirect to the offer, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "/offers/") {
		t.Fatalf("unexpected redirect target %q", loc)
	}

	// the stored offer renders its generated copy
	resp = get(t, app, sid, loc)
	body, _ = io.ReadAll(resp.Body)
	s := string(body)
	if resp.StatusCode != 200 {
		t.Fatalf("offer page failed: %d\n%s", resp.StatusCode, s)
	}
	for _, want := range []string{"Paint With Confidence", "3 live 90-minute session(s)", "Replays", "$97"} {
		if !strings.Contains(s, want) {
			t.Fatalf("offer page missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "group chat") {
		t.Fatalf("group chat bullet should be absent:\n%s", s)
	}

	// plain-text document matches what the page embeds
	resp = get(t, app, sid, loc+"/copy.txt")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("copy.txt content type %q", ct)
	}
	txt, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(txt), "Access and delivery via Stan") {
		t.Fatalf("document missing platform bullet:\n%s", txt)
	}
}

func TestWizardCancelAtStepOne(t *testing.T) {
	app, sid := wizardApp(t)

	if resp := get(t, app, sid, "/offers/new"); resp.StatusCode != http.StatusFound {
		t.Fatalf("start failed: %d", resp.StatusCode)
	}

	// back at step 1 cancels and returns home
	resp := post(t, app, sid, "/offers/wizard", url.Values{"nav": {"back"}})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("cancel should redirect home, got %d -> %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// the draft is gone; the wizard page bounces back to start
	resp = get(t, app, sid, "/offers/wizard")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/offers/new" {
		t.Fatalf("spent wizard should redirect to start, got %d -> %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestWizardRequiresLogin(t *testing.T) {
	app, _ := wizardApp(t)
	req := httptest.NewRequest("GET", "/offers/new", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("anonymous wizard access should redirect to login, got %d", resp.StatusCode)
	}
}
