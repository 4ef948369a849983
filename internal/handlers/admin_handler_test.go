package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetUserRoleGuards(t *testing.T) {
	actor := uuid.New()
	app := authedApp(actor)
	h := NewAdminHandler(nil, nil)
	app.Put("/admin/users/:id/role", h.SetUserRole)

	do := func(id, body string) *http.Response {
		req := httptest.NewRequest(http.MethodPut, "/admin/users/"+id+"/role", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("own role refused", func(t *testing.T) {
		resp := do(actor.String(), `{"role":"user"}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown role refused", func(t *testing.T) {
		resp := do(uuid.New().String(), `{"role":"superadmin"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad user id", func(t *testing.T) {
		resp := do("not-a-uuid", `{"role":"admin"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	actor := uuid.New()
	app := authedApp(actor)
	h := NewAdminHandler(nil, nil)
	app.Delete("/admin/users/:id", h.DeleteUser)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/"+actor.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
