package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httptransport "github.com/lactec/intranet/internal/api/http"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/service"
	"github.com/lactec/intranet/internal/testenv"
)

type harness struct {
	env    *testenv.Env
	server *fiber.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	env := testenv.New(t)
	return &harness{env: env, server: httptransport.NewServer(env.App)}
}

// login creates an account holding roles and returns its bearer token.
func (h *harness) login(t *testing.T, username string, roles ...domain.Role) string {
	t.Helper()
	_, err := h.env.Auth.CreateUser(context.Background(), service.CreateUserInput{
		Username: username,
		Password: "secret",
		Roles:    roles,
	})
	require.NoError(t, err)

	resp := h.do(t, http.MethodPost, "/auth/login", "", `{"username":"`+username+`","password":"secret"}`)
	require.Equal(t, http.StatusOK, resp.status)
	var body struct {
		Data struct {
			Auth struct {
				Token string `json:"token"`
			} `json:"auth"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.body, &body))
	return body.Data.Auth.Token
}

type response struct {
	status int
	body   []byte
}

func (h *harness) do(t *testing.T, method, path, token, payload string) response {
	t.Helper()
	var reader io.Reader
	if payload != "" {
		reader = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.server.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, body: body}
}

func decodeData(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error.Code
}

const areaPayload = `{"portal_type":"Area","id":"ti","title":"Tecnologia da Informação","description":"Área responsável por TI","fields":{"email":"ti@lactec.com.br"}}`

func TestHealth(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, resp.status)

	resp = h.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, string(resp.body), `"postgres":"disabled"`)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ana")

	resp := h.do(t, http.MethodPost, "/auth/login", "", `{"username":"ana","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp.body))

	resp = h.do(t, http.MethodPost, "/auth/login", "", `{"username":"ana"}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
}

func TestContent_RequiresToken(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/content", "", areaPayload)
	assert.Equal(t, http.StatusUnauthorized, resp.status)

	resp = h.do(t, http.MethodPost, "/content", "garbage", areaPayload)
	assert.Equal(t, http.StatusUnauthorized, resp.status)
}

func TestCreateArea_OverHTTP(t *testing.T) {
	h := newHarness(t)
	manager := h.login(t, "gestor", domain.RoleManager)

	resp := h.do(t, http.MethodPost, "/content", manager, areaPayload)
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	area := decodeData(t, resp.body)
	assert.Equal(t, "/ti", area["path"])
	assert.Equal(t, testenv.PortalURL+"/ti", area["url"])
	assert.Equal(t, false, area["exclude_from_nav"])

	uid := area["uid"].(string)
	resp = h.do(t, http.MethodGet, "/groups/"+uid+"-editores", manager, "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "Área Tecnologia da Informação: Editores", decodeData(t, resp.body)["title"])

	resp = h.do(t, http.MethodGet, "/groups/"+uid+"-editores/roles?obj="+uid, manager, "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, []any{"Editor"}, decodeData(t, resp.body)["roles"])

	resp = h.do(t, http.MethodPatch, "/content/"+uid, manager, `{"description":""}`)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, true, decodeData(t, resp.body)["exclude_from_nav"])
}

func TestCreateArea_ForbiddenForEditor(t *testing.T) {
	h := newHarness(t)
	editor := h.login(t, "editor", domain.RoleEditor)

	resp := h.do(t, http.MethodPost, "/content", editor, areaPayload)
	assert.Equal(t, http.StatusForbidden, resp.status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp.body))
}

func TestAreaEditorsGroupMember_CanEdit(t *testing.T) {
	h := newHarness(t)
	manager := h.login(t, "gestor", domain.RoleManager)
	resp := h.do(t, http.MethodPost, "/content", manager, areaPayload)
	require.Equal(t, http.StatusCreated, resp.status)
	uid := decodeData(t, resp.body)["uid"].(string)

	editorToken := h.login(t, "editor")
	editor, err := h.env.Stores.Users.GetByUsername(context.Background(), "editor")
	require.NoError(t, err)

	resp = h.do(t, http.MethodPatch, "/content/"+uid, editorToken, `{"title":"TI"}`)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = h.do(t, http.MethodPost, "/groups/"+uid+"-editores/members", editorToken, `{"user_id":"`+editor.ID+`"}`)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = h.do(t, http.MethodPost, "/groups/"+uid+"-editores/members", manager, `{"user_id":"`+editor.ID+`"}`)
	require.Equal(t, http.StatusNoContent, resp.status)

	resp = h.do(t, http.MethodPatch, "/content/"+uid, editorToken, `{"title":"TI"}`)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "TI", decodeData(t, resp.body)["title"])
}

func TestSearchAndTypes(t *testing.T) {
	h := newHarness(t)
	manager := h.login(t, "gestor", domain.RoleManager)
	resp := h.do(t, http.MethodPost, "/content", manager, areaPayload)
	require.Equal(t, http.StatusCreated, resp.status)
	uid := decodeData(t, resp.body)["uid"].(string)

	resp = h.do(t, http.MethodPost, "/content", manager,
		`{"portal_type":"Pessoa","title":"Ana","fields":{"area":"`+uid+`","cargo":"Analista"}}`)
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))

	resp = h.do(t, http.MethodGet, "/search?portal_type=Pessoa&area="+uid, manager, "")
	require.Equal(t, http.StatusOK, resp.status)
	var results struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.body, &results))
	require.Len(t, results.Data, 1)
	assert.Equal(t, testenv.PortalURL+"/ana", results.Data[0]["url"])

	resp = h.do(t, http.MethodGet, "/search?colour=blue", manager, "")
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = h.do(t, http.MethodGet, "/types/Area", manager, "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.ElementsMatch(t, []any{"Manager", "Site Administrator"}, decodeData(t, resp.body)["add_roles"])

	resp = h.do(t, http.MethodGet, "/types/Document", manager, "")
	assert.Equal(t, http.StatusNotFound, resp.status)
}

func TestUpgrades_ManagerOnly(t *testing.T) {
	h := newHarness(t)
	admin := h.login(t, "siteadmin", domain.RoleSiteAdministrator)
	manager := h.login(t, "gestor", domain.RoleManager)

	resp := h.do(t, http.MethodGet, "/upgrades", admin, "")
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = h.do(t, http.MethodGet, "/upgrades", manager, "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, string(resp.body), `"id":"reindexa-pessoa"`)
	assert.Contains(t, string(resp.body), `"pending":true`)

	resp = h.do(t, http.MethodPost, "/upgrades/lactec.intranet:default/run", manager, "")
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	assert.Equal(t, "1001", decodeData(t, resp.body)["to"])

	resp = h.do(t, http.MethodPost, "/upgrades/steps/reindexa-pessoa/run", manager, "")
	assert.Equal(t, http.StatusOK, resp.status)

	resp = h.do(t, http.MethodPost, "/upgrades/steps/missing/run", manager, "")
	assert.Equal(t, http.StatusNotFound, resp.status)
}

func TestAddMember_SurvivesLaterRequests(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	manager := h.login(t, "gestor", domain.RoleManager)
	resp := h.do(t, http.MethodPost, "/content", manager, areaPayload)
	require.Equal(t, http.StatusCreated, resp.status)
	groupID := decodeData(t, resp.body)["uid"].(string) + "-editores"

	h.login(t, "editor")
	editor, err := h.env.Stores.Users.GetByUsername(ctx, "editor")
	require.NoError(t, err)

	resp = h.do(t, http.MethodPost, "/groups/"+groupID+"/members", manager, `{"user_id":"`+editor.ID+`"}`)
	require.Equal(t, http.StatusNoContent, resp.status)

	// request buffers are reused; stored ids must not change with them
	h.do(t, http.MethodGet, "/health/live", "", "")
	h.do(t, http.MethodGet, "/groups/someone-else-entirely-here-editores", manager, "")

	groups, err := h.env.Groups.GroupsFor(ctx, editor.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{groupID}, groups)
}

func TestUnknownPath_NotFound(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/does-not-exist", "", "")
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp.body))

	resp = h.do(t, http.MethodGet, "/content/some-uid", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.status)
}
