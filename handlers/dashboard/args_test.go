package dashboard

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/flixboard/web-ui/services/stats"
)

// --- Test helpers ---

// newTestRouter wires the session middleware and captures the args bound on
// GET / so session and query handling can be asserted end to end.
func newTestRouter(h *Handler, got **Args) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("test-secret"))))
	r.GET("/", func(c *gin.Context) {
		*got = h.bindArgs(c)
		c.Status(http.StatusOK)
	})
	r.POST("/preferences", h.preferences)
	return r
}

func get(t *testing.T, r *gin.Engine, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for %v, got %d", target, w.Code)
	}
	return w
}

func postForm(r *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestBindArgs_Defaults(t *testing.T) {
	var got *Args
	r := newTestRouter(&Handler{}, &got)

	get(t, r, "/", nil)

	if got.YearFrom != 0 || got.YearTo != 0 {
		t.Errorf("expected unbounded window, got %d-%d", got.YearFrom, got.YearTo)
	}
	if got.TopN != stats.DefaultTopN {
		t.Errorf("expected default top N %d, got %d", stats.DefaultTopN, got.TopN)
	}
}

func TestBindArgs_QuerySwapAndClamp(t *testing.T) {
	var got *Args
	r := newTestRouter(&Handler{}, &got)

	get(t, r, "/?from=2020&to=2015&top=1000", nil)

	if got.YearFrom != 2015 || got.YearTo != 2020 {
		t.Errorf("expected swapped window 2015-2020, got %d-%d", got.YearFrom, got.YearTo)
	}
	if got.TopN != stats.MaxTopN {
		t.Errorf("expected top N capped at %d, got %d", stats.MaxTopN, got.TopN)
	}
}

func TestBindArgs_GarbageIgnored(t *testing.T) {
	var got *Args
	r := newTestRouter(&Handler{}, &got)

	get(t, r, "/?from=banana&to=-3&top=x", nil)

	if got.YearFrom != 0 || got.YearTo != 0 {
		t.Errorf("expected unbounded window, got %d-%d", got.YearFrom, got.YearTo)
	}
	if got.TopN != stats.DefaultTopN {
		t.Errorf("expected default top N, got %d", got.TopN)
	}
}

func TestBindArgs_ErrFromQuery(t *testing.T) {
	var got *Args
	r := newTestRouter(&Handler{}, &got)

	get(t, r, "/?err=dataset+not+loaded", nil)

	if got.Err != "dataset not loaded" {
		t.Errorf("unexpected err %q", got.Err)
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	var got *Args
	r := newTestRouter(&Handler{}, &got)

	w := postForm(r, "/preferences", url.Values{
		"from": {"2018"},
		"to":   {"2020"},
		"top":  {"5"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %v", loc)
	}

	get(t, r, "/", w.Result().Cookies())

	if got.YearFrom != 2018 || got.YearTo != 2020 {
		t.Errorf("expected stored window 2018-2020, got %d-%d", got.YearFrom, got.YearTo)
	}
	if got.TopN != 5 {
		t.Errorf("expected stored top N 5, got %d", got.TopN)
	}
}

func TestPreferences_QueryStillOverridesSession(t *testing.T) {
	var got *Args
	r := newTestRouter(&Handler{}, &got)

	w := postForm(r, "/preferences", url.Values{"from": {"2018"}, "to": {"2020"}})

	get(t, r, "/?from=2019", w.Result().Cookies())

	if got.YearFrom != 2019 || got.YearTo != 2020 {
		t.Errorf("expected window 2019-2020, got %d-%d", got.YearFrom, got.YearTo)
	}
}

func TestPreferences_InvalidValueRedirectsWithError(t *testing.T) {
	var got *Args
	r := newTestRouter(&Handler{}, &got)

	w := postForm(r, "/preferences", url.Values{"from": {"banana"}})
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("expected parsable location, got %v", err)
	}
	if loc.Query().Get("err") == "" {
		t.Errorf("expected err query param in %v", loc)
	}

	// nothing should have been stored
	get(t, r, "/", w.Result().Cookies())
	if got.YearFrom != 0 {
		t.Errorf("expected no stored window, got from=%d", got.YearFrom)
	}
}
