package objects_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"opnsense-manager/core/database"
	"opnsense-manager/core/history"
	"opnsense-manager/core/opnsense"
	"opnsense-manager/core/opnsense/mocks"
	"opnsense-manager/core/reconcile"
	"opnsense-manager/feature/objects"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var rulesSearch = opnsense.Call{Module: "firewall", Controller: "filter", Command: "get"}

func rulesBody(t *testing.T) *opnsense.Response {
	t.Helper()
	data, err := os.ReadFile("../firewall/testdata/rules.json")
	require.NoError(t, err)
	return &opnsense.Response{StatusCode: 200, Body: data}
}

func setupApp(t *testing.T, session *mocks.Session, recorder *history.Recorder) *fiber.App {
	t.Helper()

	var observers []reconcile.Observer
	if recorder != nil {
		observers = append(observers, recorder)
	}
	engine := reconcile.NewEngine(session, zap.NewNop(), reconcile.EngineOptions{Observers: observers})
	svc := objects.NewService(engine, objects.NewRegistry(), recorder, zap.NewNop())

	feature := objects.NewFeature(svc)
	assert.Equal(t, "objects", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &out))
	return resp.StatusCode, out
}

func TestHandleReconcile_CheckModeUpdate(t *testing.T) {
	session := new(mocks.Session)
	session.On("Get", mock.Anything, rulesSearch).Return(rulesBody(t), nil)
	app := setupApp(t, session, nil)

	status, out := post(t, app, "/objects/firewall_rule/reconcile?check=true", `{
		"config": {"sequence": 10, "description": "https out", "interface": "lan",
		           "protocol": "TCP", "source_net": "192.168.1.0/24", "destination_port": "443",
		           "action": "block"}
	}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "update", out["decision"])
	assert.Equal(t, true, out["changed"])

	diff := out["diff"].(map[string]any)
	assert.Equal(t, "pass", diff["before"].(map[string]any)["action"])
	assert.Equal(t, "block", diff["after"].(map[string]any)["action"])

	session.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	session.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestHandleReconcile_AbsentWithoutMatch(t *testing.T) {
	session := new(mocks.Session)
	session.On("Get", mock.Anything, rulesSearch).Return(rulesBody(t), nil)
	app := setupApp(t, session, nil)

	status, out := post(t, app, "/objects/firewall_rule/reconcile", `{
		"state": "absent",
		"config": {"sequence": 77, "description": "gone", "interface": "lan"}
	}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "no_change", out["decision"])
	assert.Equal(t, false, out["changed"])
	assert.Empty(t, out["diff"])
}

func TestHandleReconcile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		setup  func(s *mocks.Session)
		status int
	}{
		{
			name:   "ValidationFailed",
			path:   "/objects/firewall_rule/reconcile",
			body:   `{"config": {"description": "no sequence", "interface": "lan"}}`,
			status: fiber.StatusUnprocessableEntity,
		},
		{
			name:   "InvalidState",
			path:   "/objects/vip/reconcile",
			body:   `{"state": "gone", "config": {"address": "10.0.0.5", "interface": "lan"}}`,
			status: fiber.StatusUnprocessableEntity,
		},
		{
			name:   "UnknownType",
			path:   "/objects/nat_rule/reconcile",
			body:   `{"config": {}}`,
			status: fiber.StatusNotFound,
		},
		{
			name:   "ListOnlyType",
			path:   "/objects/unbound_dot/reconcile",
			body:   `{"config": {}}`,
			status: fiber.StatusBadRequest,
		},
		{
			name: "ApplianceFailure",
			path: "/objects/firewall_rule/reconcile",
			body: `{"config": {"sequence": 10, "description": "https out", "interface": "lan"}}`,
			setup: func(s *mocks.Session) {
				s.On("Get", mock.Anything, rulesSearch).
					Return(nil, &opnsense.APIError{Path: rulesSearch.Path(), StatusCode: 401, Message: "unauthorized"})
			},
			status: fiber.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := new(mocks.Session)
			if tt.setup != nil {
				tt.setup(session)
			}
			app := setupApp(t, session, nil)

			status, out := post(t, app, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestHandleListObjects(t *testing.T) {
	session := new(mocks.Session)
	session.On("Get", mock.Anything, rulesSearch).Return(rulesBody(t), nil)
	app := setupApp(t, session, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/objects/firewall_rule", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var records []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, "https out", records[0]["description"])
	assert.Equal(t, "block", records[1]["action"])
}

func TestHandleListTypes(t *testing.T) {
	app := setupApp(t, new(mocks.Session), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/objects", nil))
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
	assert.Equal(t, []string{"firewall_rule", "unbound_dot", "unbound_host_alias", "vip"}, names)
}

func TestHandleHistory(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	recorder := history.NewRecorder(db)
	require.NoError(t, recorder.Migrate())

	session := new(mocks.Session)
	session.On("Get", mock.Anything, rulesSearch).Return(rulesBody(t), nil)
	app := setupApp(t, session, recorder)

	status, _ := post(t, app, "/objects/firewall_rule/reconcile?check=true",
		`{"config": {"sequence": 40, "description": "new", "interface": "wan"}}`)
	require.Equal(t, fiber.StatusOK, status)

	resp, err := app.Test(httptest.NewRequest("GET", "/history?type=firewall_rule&limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var changes []history.Change
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&changes))
	require.Len(t, changes, 1)
	assert.Equal(t, "create", changes[0].Decision)
	assert.True(t, changes[0].Check)
	assert.False(t, changes[0].Applied)
}

func TestHandleHistory_Disabled(t *testing.T) {
	app := setupApp(t, new(mocks.Session), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestService_ReconcileAppliesOnce(t *testing.T) {
	session := new(mocks.Session)
	session.On("Get", mock.Anything, rulesSearch).Return(rulesBody(t), nil)
	session.On("Delete", mock.Anything, mock.MatchedBy(func(c opnsense.Call) bool {
		return c.Command == "delRule" && len(c.Params) == 1 && c.Params[0] == "9c1d6e2a-0f4b-4c8e-b2a7-5e3f8d1c0b02"
	})).Return(mocks.JSON(`{"result": "deleted"}`), nil).Once()
	session.On("Set", mock.Anything, opnsense.Call{Module: "firewall", Controller: "filter", Command: "apply"}).
		Return(mocks.JSON(`{"status": "ok"}`), nil).Once()

	engine := reconcile.NewEngine(session, zap.NewNop(), reconcile.EngineOptions{})
	svc := objects.NewService(engine, objects.NewRegistry(), nil, nil)

	res, err := svc.Reconcile(context.Background(), objects.Declaration{
		Type:   "firewall_rule",
		State:  "absent",
		Config: map[string]any{"sequence": "20", "description": "block private", "interface": "wan"},
	}, reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, reconcile.Delete, res.Decision)
	assert.Equal(t, "block private", res.Diff.Before["description"])
	session.AssertExpectations(t)

	_, err = svc.History(context.Background(), history.Query{})
	assert.True(t, errors.Is(err, objects.ErrHistoryDisabled))
}
