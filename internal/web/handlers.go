package web

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/ops"
	"github.com/hpungsan/flashdeck/internal/session"
)

// sessionCookie names the cookie that ties a browser to the open session.
const sessionCookie = "flashdeck_session"

// otherSubject is the subject choice that takes a typed-in subject instead.
const otherSubject = "Other"

// Handlers contains HTTP route handlers for the web UI.
//
// All handlers share one session. mu serializes them so each action runs
// to completion before the next starts.
type Handlers struct {
	mu       sync.Mutex
	session  *session.Session
	token    string // cookie value of the logged-in browser; "" when logged out
	cfg      *config.Config
	renderer *Renderer
}

// requireLogin serializes next and rejects requests that do not carry the
// current session cookie.
func (h *Handlers) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if !h.session.Authenticated() || !h.hasToken(r) {
			if r.Method == http.MethodGet && !wantsJSON(r) && r.Header.Get("HX-Request") != "true" {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			h.renderer.renderError(w, r, errors.NewUnauthenticated())
			return
		}
		next(w, r)
	}
}

func (h *Handlers) hasToken(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	return err == nil && h.token != "" && c.Value == h.token
}

// HandleLoginPage handles GET /login.
func (h *Handlers) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session.Authenticated() && h.hasToken(r) {
		http.Redirect(w, r, "/study", http.StatusFound)
		return
	}
	h.renderer.renderPage(w, r, "login", LoginPageData{PageData: h.pageData("Login", "", session.Snapshot{})})
}

// HandleLogin handles POST /login. Any non-empty email and password are accepted.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	email := r.FormValue("email")

	snap, err := h.session.Login(email, r.FormValue("password"))
	if err != nil {
		if wantsJSON(r) {
			h.renderer.renderError(w, r, err)
			return
		}
		h.renderer.renderPageStatus(w, r, statusOf(err), "login", LoginPageData{
			PageData: h.pageData("Login", "", snap),
			Email:    email,
			Error:    messageOf(err),
		})
		return
	}

	h.token = ulid.Make().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    h.token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	switch {
	case wantsJSON(r):
		renderJSON(w, http.StatusOK, map[string]any{
			"authenticated": snap.Authenticated,
			"total":         snap.Total,
		})
	case r.Header.Get("HX-Request") == "true":
		w.Header().Set("HX-Redirect", "/study")
		w.WriteHeader(http.StatusOK)
	default:
		http.Redirect(w, r, "/study", http.StatusSeeOther)
	}
}

// HandleLogout handles POST /logout.
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.Logout(); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.token = ""
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.redirect(w, r, "/login")
}

// HandleStudy handles GET /study, optionally switching the subject filter.
func (h *Handlers) HandleStudy(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Snapshot()
	if r.URL.Query().Has("subject") {
		snap, err = h.session.SelectSubject(r.URL.Query().Get("subject"))
	}
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.respondStudy(w, r, snap, false)
}

// HandleNext handles POST /study/next.
func (h *Handlers) HandleNext(w http.ResponseWriter, r *http.Request) {
	h.studyCommand(w, r, h.session.Next)
}

// HandlePrevious handles POST /study/previous.
func (h *Handlers) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	h.studyCommand(w, r, h.session.Previous)
}

// HandleReveal handles POST /study/reveal.
func (h *Handlers) HandleReveal(w http.ResponseWriter, r *http.Request) {
	h.studyCommand(w, r, h.session.ToggleReveal)
}

func (h *Handlers) studyCommand(w http.ResponseWriter, r *http.Request, cmd func() (session.Snapshot, error)) {
	snap, err := cmd()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.respondStudy(w, r, snap, true)
}

// respondStudy renders the study state. Commands redirect plain form posts
// back to the page; htmx swaps just the card.
func (h *Handlers) respondStudy(w http.ResponseWriter, r *http.Request, snap session.Snapshot, command bool) {
	data := h.studyData(snap)

	switch {
	case wantsJSON(r):
		renderJSON(w, http.StatusOK, map[string]any{
			"subject":  data.Subject,
			"index":    data.Index,
			"count":    data.Count,
			"revealed": data.Revealed,
			"current":  data.Current,
			"total":    data.Total,
		})
	case r.Header.Get("HX-Target") == "card":
		h.renderer.renderBlock(w, http.StatusOK, "study", "card", data)
	case command:
		http.Redirect(w, r, "/study", http.StatusSeeOther)
	default:
		h.renderer.renderPage(w, r, "study", data)
	}
}

func (h *Handlers) studyData(snap session.Snapshot) StudyPageData {
	data := StudyPageData{
		PageData: h.pageData("Study", "study", snap),
		Subjects: snap.SubjectOptions(),
		Subject:  snap.Subject,
		Current:  snap.Current,
		Count:    len(snap.Study),
		Revealed: snap.Cursor.Revealed,
	}
	if snap.Current != nil {
		data.Index = snap.Cursor.Position + 1
		if data.Revealed {
			data.BackHTML = renderMarkdown(snap.Current.Card.Back)
		}
	}
	return data
}

// HandleCreatePage handles GET /create.
func (h *Handlers) HandleCreatePage(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Snapshot()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	data := h.createData(snap)
	data.Created = r.URL.Query().Get("created") == "1"
	h.renderer.renderPage(w, r, "create", data)
}

// HandleCreate handles POST /create. Choosing "Other" takes the subject
// from the custom_subject field.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	choice := r.FormValue("subject")
	custom := r.FormValue("custom_subject")
	front := r.FormValue("front")
	back := r.FormValue("back")

	subject := choice
	if strings.TrimSpace(choice) == otherSubject {
		subject = custom
	}

	snap, err := h.session.Create(subject, front, back)
	if err != nil {
		if wantsJSON(r) {
			h.renderer.renderError(w, r, err)
			return
		}
		data := h.createData(snap)
		data.Subject = choice
		data.CustomSubject = custom
		data.Front = front
		data.Back = back
		data.Error = messageOf(err)
		h.renderer.renderPageStatus(w, r, statusOf(err), "create", data)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusCreated, map[string]any{
			"position": snap.Total - 1,
			"card":     card.Flashcard{Subject: strings.TrimSpace(subject), Front: front, Back: back},
			"total":    snap.Total,
		})
		return
	}
	h.redirect(w, r, "/create?created=1")
}

func (h *Handlers) createData(snap session.Snapshot) CreatePageData {
	return CreatePageData{
		PageData: h.pageData("Create", "create", snap),
		Choices:  h.cfg.SubjectChoices,
		Groups:   snap.Groups,
	}
}

// HandleManage handles GET /manage?subject=...&q=...
func (h *Handlers) HandleManage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.SelectManageSubject(r.URL.Query().Get("subject")); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	snap, err := h.session.SetSearch(r.URL.Query().Get("q"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := h.manageData(snap)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"subject": data.Subject,
			"search":  data.Query,
			"items":   data.Items,
			"message": data.Message,
			"total":   data.Total,
		})
		return
	}

	// If htmx targets #results, render only the results fragment
	if r.Header.Get("HX-Target") == "results" {
		h.renderer.renderBlock(w, http.StatusOK, "manage", "manage-results", data)
		return
	}
	h.renderer.renderPage(w, r, "manage", data)
}

func (h *Handlers) manageData(snap session.Snapshot) ManagePageData {
	data := ManagePageData{
		PageData: h.pageData("Manage", "manage", snap),
		Subjects: snap.SubjectOptions(),
		Subject:  snap.ManageSubject,
		Query:    snap.Search,
		Items:    snap.Manage,
	}
	switch {
	case snap.Total == 0:
		data.Message = "No flashcards found."
	case len(snap.Manage) == 0:
		data.Message = "No matching flashcards."
	default:
		data.Message = "Showing " + ops.Plural(len(snap.Manage), "flashcard")
	}
	return data
}

// HandleDelete handles POST /cards/{position}/delete and DELETE /cards/{position}.
// The position indexes the full collection, not the filtered view.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	position, err := ops.ParsePosition(r.PathValue("position"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	snap, err := h.session.Delete(position)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted":  true,
			"position": position,
			"total":    snap.Total,
		})
		return
	}
	h.redirect(w, r, manageURL(snap))
}

// HandleDeleteAll handles POST /cards/delete-all. The form must carry confirm=true.
func (h *Handlers) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	before, err := h.session.Snapshot()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	if _, err := h.session.DeleteAll(); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted": before.Total,
			"total":   0,
		})
		return
	}
	h.redirect(w, r, "/manage")
}

// redirect sends htmx clients an HX-Redirect and everyone else a 303.
func (h *Handlers) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handlers) pageData(title, nav string, snap session.Snapshot) PageData {
	return PageData{
		Title:         title,
		Version:       h.renderer.version,
		Nav:           nav,
		Authenticated: snap.Authenticated,
		Total:         snap.Total,
	}
}

// manageURL keeps the manage filters across a redirect.
func manageURL(snap session.Snapshot) string {
	q := url.Values{}
	if snap.ManageSubject != "" && snap.ManageSubject != card.AllSubjects {
		q.Set("subject", snap.ManageSubject)
	}
	if snap.Search != "" {
		q.Set("q", snap.Search)
	}
	if len(q) == 0 {
		return "/manage"
	}
	return "/manage?" + q.Encode()
}

func statusOf(err error) int {
	if dErr, ok := errors.As(err); ok {
		return dErr.Status
	}
	return http.StatusInternalServerError
}

func messageOf(err error) string {
	if dErr, ok := errors.As(err); ok {
		return dErr.Message
	}
	return "an internal error occurred"
}
