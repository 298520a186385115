package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"quizdeck/middleware"
	"quizdeck/models"
	"quizdeck/sessions"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedDeck []models.Question

func (d fixedDeck) Load(context.Context) ([]models.Question, error) {
	if d == nil {
		return nil, errors.New("open Custom Study Session.json: no such file or directory")
	}
	return d, nil
}

func testDeck() fixedDeck {
	return fixedDeck{
		{ID: "101", Prompt: "Capital of France?", Options: [4]string{"Paris", "Rome", "Berlin", "Madrid"}, CorrectOption: 1, Tags: []string{"Prelims-2020", "MATH", "Hard", "Science"}},
		{ID: "150", Prompt: "2+2?", Options: [4]string{"3", "4", "5", "6"}, CorrectOption: 2},
		{ID: "205", Prompt: "Largest planet?", Options: [4]string{"Mars", "Venus", "Jupiter", "Earth"}, CorrectOption: 3},
	}
}

type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T, deck fixedDeck) *client {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	store := sessions.NewStore(deck, time.Hour, logger)
	issuer := sessions.NewIssuer("test-key", "quizdeck", time.Hour)
	return &client{t: t, router: NewRouter(RouterConfig{Store: store, Issuer: issuer, DeckName: "Custom Study Session"})}
}

func (cl *client) open() *httptest.ResponseRecorder {
	cl.t.Helper()
	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cl.cookie = c
		}
	}
	return w
}

func (cl *client) do(method, path string, body any) *httptest.ResponseRecorder {
	cl.t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			cl.t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)
	return w
}

func (cl *client) state(method, path string, body any) models.StateResponse {
	cl.t.Helper()
	w := cl.do(method, path, body)
	if w.Code != http.StatusOK {
		cl.t.Fatalf("%s %s: status %d: %s", method, path, w.Code, w.Body.String())
	}
	var resp models.StateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		cl.t.Fatalf("decode %s: %v", path, err)
	}
	return resp
}

func TestQuizPageStartsSession(t *testing.T) {
	cl := newClient(t, testDeck())
	w := cl.open()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if cl.cookie == nil || !cl.cookie.HttpOnly {
		t.Fatalf("session cookie not set: %+v", cl.cookie)
	}
	body := w.Body.String()
	for _, want := range []string{"Capital of France?", `<span class="tag tag-hard">Hard</span>`, `<span class="tag">Science</span>`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, ">MATH<") || strings.Contains(body, "Prelims-2020") {
		t.Errorf("excluded tags rendered")
	}
}

func TestQuizPageDeckNotLoaded(t *testing.T) {
	cl := newClient(t, nil)
	w := cl.open()
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
	if cl.cookie != nil {
		t.Fatalf("no session may be issued without a deck")
	}
	if strings.Contains(w.Body.String(), "questionContainer") {
		t.Fatalf("no question may be shown")
	}
}

func TestAPIRequiresSession(t *testing.T) {
	cl := newClient(t, testDeck())
	if w := cl.do(http.MethodGet, "/api/state", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAnswerMoveAndScoreboard(t *testing.T) {
	cl := newClient(t, testDeck())
	cl.open()

	resp := cl.state(http.MethodPost, "/api/answer", models.AnswerRequest{Index: 0, Option: 2})
	if !resp.Accepted || resp.Tally != (models.Tally{Incorrect: 1, Unanswered: 2}) {
		t.Fatalf("answer: %+v", resp)
	}
	if resp.Question.Options[0].State != models.OptionCorrect || resp.Question.Options[1].State != models.OptionIncorrect {
		t.Fatalf("feedback: %+v", resp.Question.Options)
	}
	resp = cl.state(http.MethodPost, "/api/answer", models.AnswerRequest{Index: 0, Option: 1})
	if resp.Accepted || resp.Tally.Incorrect != 1 {
		t.Fatalf("second answer must be ignored: %+v", resp)
	}

	resp = cl.state(http.MethodPost, "/api/move", models.MoveRequest{Direction: -1})
	if resp.Accepted || resp.Question.Index != 0 {
		t.Fatalf("move before first: %+v", resp)
	}
	resp = cl.state(http.MethodPost, "/api/key", models.KeyRequest{Key: "ArrowRight"})
	if resp.Question.Index != 1 || resp.Question.Answered {
		t.Fatalf("ArrowRight: %+v", resp.Question)
	}
	cl.state(http.MethodPost, "/api/answer", models.AnswerRequest{Index: 1, Option: 2})
	resp = cl.state(http.MethodPost, "/api/key", models.KeyRequest{Key: " "})
	cl.state(http.MethodPost, "/api/answer", models.AnswerRequest{Index: 2, Option: 1})

	resp = cl.state(http.MethodPost, "/api/key", models.KeyRequest{Key: "r", Alt: true})
	if resp.Overlay != "open" || resp.Scoreboard == nil {
		t.Fatalf("overlay: %+v", resp)
	}
	want := models.Tally{Correct: 1, Incorrect: 2, Unanswered: 0}
	if resp.Scoreboard.Tally != want || resp.Scoreboard.TotalQuestions != 3 {
		t.Fatalf("scoreboard = %+v", resp.Scoreboard)
	}

	resp = cl.state(http.MethodPost, "/api/overlay/click", models.OverlayClickRequest{Target: "wrong-answers"})
	if resp.Copied != "nid:101,205" {
		t.Fatalf("copied = %q", resp.Copied)
	}
	resp = cl.state(http.MethodPost, "/api/overlay/click", models.OverlayClickRequest{Target: "backdrop"})
	if resp.Overlay != "closed" || resp.Copied != "" {
		t.Fatalf("backdrop: %+v", resp)
	}

	w := cl.do(http.MethodGet, "/fragment", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `<td id="wrongAnswers">2</td>`) {
		t.Fatalf("fragment: %d %s", w.Code, w.Body.String())
	}
}

func TestCopyEndpoints(t *testing.T) {
	cl := newClient(t, testDeck())
	cl.open()

	resp := cl.state(http.MethodPost, "/api/copy/incorrect", nil)
	if resp.Accepted || resp.Copied != "" {
		t.Fatalf("nothing to copy yet: %+v", resp)
	}
	cl.state(http.MethodPost, "/api/move", models.MoveRequest{Direction: 1})
	resp = cl.state(http.MethodPost, "/api/copy/current", nil)
	if resp.Copied != "nid:150" {
		t.Fatalf("copied = %q", resp.Copied)
	}
	resp = cl.state(http.MethodPost, "/api/key", models.KeyRequest{Key: "X", Alt: true})
	if resp.Copied != "nid:150" {
		t.Fatalf("Alt+X copied = %q", resp.Copied)
	}
}

func TestBadRequests(t *testing.T) {
	cl := newClient(t, testDeck())
	cl.open()
	cases := []struct {
		path string
		body any
	}{
		{"/api/answer", models.AnswerRequest{Index: 0, Option: 5}},
		{"/api/answer", gin.H{"index": 0}},
		{"/api/move", models.MoveRequest{Direction: 2}},
		{"/api/key", gin.H{"alt": true}},
		{"/api/overlay/click", gin.H{}},
	}
	for _, tc := range cases {
		if w := cl.do(http.MethodPost, tc.path, tc.body); w.Code != http.StatusBadRequest {
			t.Errorf("%s %v: status %d", tc.path, tc.body, w.Code)
		}
	}
	resp := cl.state(http.MethodGet, "/api/state", nil)
	if resp.Tally.Unanswered != 3 {
		t.Fatalf("bad requests changed state: %+v", resp.Tally)
	}
}

func TestHealth(t *testing.T) {
	cl := newClient(t, testDeck())
	cl.open()
	w := cl.do(http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"sessions":1`) {
		t.Fatalf("healthz: %d %s", w.Code, w.Body.String())
	}
}
