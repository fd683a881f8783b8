package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janmasethu/sakhi/engine/chat"
	"github.com/janmasethu/sakhi/engine/infra/server"
	"github.com/janmasethu/sakhi/engine/onboarding"
	"github.com/janmasethu/sakhi/engine/user"
	"github.com/janmasethu/sakhi/pkg/config"
	"github.com/janmasethu/sakhi/pkg/logger"
)

type stubChat struct {
	resp *chat.Response
	err  error
	last chat.Request
}

func (s *stubChat) Handle(_ context.Context, req chat.Request) (*chat.Response, error) {
	s.last = req
	return s.resp, s.err
}

type stubUsers struct {
	relations map[string]string
	languages map[string]string
	answers   map[string][]user.Answer
}

func (s *stubUsers) UpdateRelation(_ context.Context, userID, relation string) error {
	s.relations[userID] = relation
	return nil
}

func (s *stubUsers) UpdatePreferredLanguage(_ context.Context, userID, language string) error {
	s.languages[userID] = language
	return nil
}

func (s *stubUsers) SaveAnswers(_ context.Context, userID string, answers []user.Answer) (int, error) {
	s.answers[userID] = append(s.answers[userID], answers...)
	return len(answers), nil
}

type stubProfiles struct {
	created int
	updated int
}

func (s *stubProfiles) Create(_ context.Context, userID string, _ *string, relationshipType string, _ map[string]any) (*onboarding.ParentProfile, error) {
	s.created++
	return &onboarding.ParentProfile{ParentProfileID: "pp-1", UserID: userID, RelationshipType: relationshipType}, nil
}

func (s *stubProfiles) UpdateAnswers(context.Context, string, map[string]any) error {
	s.updated++
	return nil
}

func newTestServer(t *testing.T, chatSvc server.ChatService) (*server.Server, *stubUsers, *stubProfiles) {
	t.Helper()
	users := &stubUsers{
		relations: map[string]string{},
		languages: map[string]string{},
		answers:   map[string][]user.Answer{},
	}
	profiles := &stubProfiles{}
	srv, err := server.New(config.Default(), logger.Setup("error", false, false), "test", server.Deps{
		Chat:     chatSvc,
		Users:    users,
		Profiles: profiles,
	})
	require.NoError(t, err)
	return srv, users, profiles
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_ShouldReportHealth(t *testing.T) {
	srv, _, _ := newTestServer(t, &stubChat{resp: &chat.Response{}})
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServer_ShouldServeChat(t *testing.T) {
	chatSvc := &stubChat{resp: &chat.Response{
		Reply: "hello there", Mode: chat.ModeGeneral, Language: "en", Route: "slm_direct",
	}}
	srv, _, _ := newTestServer(t, chatSvc)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/sakhi/chat",
		`{"user_id":"u-1","message":"hello","language":"en"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reply":"hello there"`)
	assert.Equal(t, "u-1", chatSvc.last.UserID)
	assert.Equal(t, "hello", chatSvc.last.Message)
}

func TestServer_ShouldRejectChatWithoutMessage(t *testing.T) {
	srv, _, _ := newTestServer(t, &stubChat{resp: &chat.Response{}})
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/sakhi/chat", `{"user_id":"u-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ShouldMapMissingIdentityToBadRequest(t *testing.T) {
	srv, _, _ := newTestServer(t, &stubChat{err: chat.ErrMissingIdentity})
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/sakhi/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ShouldServeOnboardingStep(t *testing.T) {
	srv, _, _ := newTestServer(t, &stubChat{resp: &chat.Response{}})
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/onboarding/step",
		`{"parent_profile_id":"pp-1","relationship_type":"mother","current_step":1,"answers_json":{}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field_name":"duration"`)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/onboarding/step",
		`{"parent_profile_id":"pp-1","relationship_type":"cousin","current_step":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ShouldCompleteOnboarding(t *testing.T) {
	srv, _, profiles := newTestServer(t, &stubChat{resp: &chat.Response{}})
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/onboarding/complete",
		`{"user_id":"u-1","relationship_type":"mother","answers_json":{"duration":"1–2 years"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, profiles.created)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/onboarding/complete",
		`{"parent_profile_id":"pp-1","user_id":"u-1","relationship_type":"mother","answers_json":{}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, profiles.updated)
}

func TestServer_ShouldUpdateUserSettings(t *testing.T) {
	srv, users, _ := newTestServer(t, &stubChat{resp: &chat.Response{}})
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/user/relation",
		`{"user_id":"u-1","relation":"husband"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "husband", users.relations["u-1"])

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/user/preferred-language",
		`{"user_id":"u-1","preferred_language":"te"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "te", users.languages["u-1"])

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/user/relation", `{"user_id":"u-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ShouldSaveUserAnswers(t *testing.T) {
	srv, users, _ := newTestServer(t, &stubChat{resp: &chat.Response{}})
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/user/answers",
		`{"user_id":"u-1","answers":[
			{"question_key":"cycle_regularity","selected_options":["Irregular"]},
			{"question_key":"trying_duration","selected_options":["6–12 months"]}
		]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"saved":2`)
	assert.Len(t, users.answers["u-1"], 2)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/user/answers",
		`{"user_id":"u-1","answers":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/user/answers",
		`{"user_id":"u-1","answers":[{"selected_options":["a"]}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
