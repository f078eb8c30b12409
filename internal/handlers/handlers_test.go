// handlers_test.go
//
// Lead lifecycle and referential-integrity service for the portfolio admin console
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of portfolio-leads.
// portfolio-leads is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// portfolio-leads is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with portfolio-leads.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	glebarez "github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/localnerve/portfolio-leads/internal/database"
	"github.com/localnerve/portfolio-leads/internal/notify"
	"github.com/localnerve/portfolio-leads/internal/services"
)

type testApp struct {
	app         *fiber.App
	submissions *services.SubmissionService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.Open(glebarez.Open(":memory:"), logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	store := database.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })

	log := zap.NewNop()
	submissions := services.NewSubmissionService(store, notify.NewLogNotifier(log), time.Second, log)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	Register(app.Group("/api"), Services{
		Categories:  services.NewCategoryService(store, log),
		Clients:     services.NewClientService(store, log),
		Submissions: submissions,
		Projects:    services.NewProjectService(store, log),
		Ledger:      services.NewLedgerService(store, log),
	}, func(c *fiber.Ctx) error { return c.Next() })

	return &testApp{app: app, submissions: submissions}
}

// envelope is the decoded response body
type envelope map[string]interface{}

func (e envelope) data() map[string]interface{} {
	d, _ := e["data"].(map[string]interface{})
	return d
}

func (ta *testApp) do(t *testing.T, method, target string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCategoryRoutes(t *testing.T) {
	ta := newTestApp(t)

	status, body := ta.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 6)

	status, body = ta.do(t, http.MethodPost, "/api/categories", fiber.Map{"name": "Game", "color": "red"})
	require.Equal(t, http.StatusCreated, status)
	categoryID := body.data()["_id"].(string)

	status, body = ta.do(t, http.MethodPost, "/api/categories", fiber.Map{"name": "Game"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Category with this name already exists", body["error"])
	assert.Equal(t, "conflict", body["type"])
	assert.Equal(t, "/api/categories", body["url"])

	status, _ = ta.do(t, http.MethodPost, "/api/projects", fiber.Map{"title": "Arcade", "category": categoryID})
	require.Equal(t, http.StatusCreated, status)

	status, body = ta.do(t, http.MethodDelete, "/api/categories?id="+categoryID, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.EqualValues(t, 1, body["projectCount"])

	status, body = ta.do(t, http.MethodGet, "/api/projects?categoryId="+categoryID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)
}

func TestLeadLifecycleRoutes(t *testing.T) {
	ta := newTestApp(t)

	status, body := ta.do(t, http.MethodPost, "/api/send-contact-email", fiber.Map{
		"name":    "Asha",
		"email":   "asha@example.com",
		"message": "Landing page please",
	})
	require.Equal(t, http.StatusOK, status)
	formID := body.data()["id"].(string)
	ta.submissions.Wait()

	status, body = ta.do(t, http.MethodPost, "/api/send-contact-email", fiber.Map{"name": "NoEmail"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name, email, and message are required", body["error"])

	status, body = ta.do(t, http.MethodGet, "/api/submissions?status=new", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)
	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["totalForms"])

	status, _ = ta.do(t, http.MethodGet, "/api/submissions?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = ta.do(t, http.MethodPost, "/api/clients", fiber.Map{"action": "convert_to_client", "formId": formID})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Client created successfully", body["message"])
	clientID := body.data()["_id"].(string)

	status, body = ta.do(t, http.MethodPost, "/api/clients", fiber.Map{"action": "convert_to_client", "formId": formID})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, clientID, body["clientId"])

	status, body = ta.do(t, http.MethodPost, "/api/clients", fiber.Map{
		"action":      "add_project",
		"clientId":    clientID,
		"projectData": fiber.Map{"name": "Landing Page", "budget": "abc"},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 0, body.data()["budget"])

	status, body = ta.do(t, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, status)
	clients := body["data"].([]interface{})
	require.Len(t, clients, 1)
	assert.Len(t, clients[0].(map[string]interface{})["projects"], 1)
	assert.EqualValues(t, 1, body["stats"].(map[string]interface{})["totalClients"])

	status, body = ta.do(t, http.MethodPost, "/api/clients", fiber.Map{"action": "archive"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid action", body["error"])

	status, _ = ta.do(t, http.MethodDelete, "/api/clients?clientId="+clientID, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = ta.do(t, http.MethodDelete, "/api/clients?clientId="+clientID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ta.do(t, http.MethodPost, "/api/visit", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = ta.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, status)
	ledger := body.data()["ledger"].(map[string]interface{})
	assert.EqualValues(t, 1, ledger["totalVisitors"])
	assert.EqualValues(t, 0, ledger["totalClients"])
	assert.Equal(t, false, body.data()["clientsDrift"])
}

func TestMalformedBody(t *testing.T) {
	ta := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/clients", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
