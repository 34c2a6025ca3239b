package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobast/bokkal/internal/domain/model"
	pgrepo "github.com/jobast/bokkal/internal/repo/postgres"
	userssvc "github.com/jobast/bokkal/internal/services/users"
	httperrors "github.com/jobast/bokkal/internal/transport/http/errors"
)

type memDirectory struct {
	users map[string]model.User
}

func (d *memDirectory) GetByID(_ context.Context, id string) (model.User, error) {
	user, ok := d.users[id]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (d *memDirectory) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	user, ok := d.users[id]
	if !ok {
		return pgrepo.ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	d.users[id] = user
	return nil
}

func (d *memDirectory) SetVerified(_ context.Context, id string, isVerified bool) error {
	user, ok := d.users[id]
	if !ok {
		return pgrepo.ErrUserNotFound
	}
	user.IsVerified = isVerified
	d.users[id] = user
	return nil
}

func (d *memDirectory) List(_ context.Context, _ pgrepo.UserFilter) ([]pgrepo.UserWithEventCount, int, error) {
	var out []pgrepo.UserWithEventCount
	for _, user := range d.users {
		out = append(out, pgrepo.UserWithEventCount{User: user})
	}
	return out, len(out), nil
}

func newUsersAdminHandler() (*AdminHandler, *memDirectory) {
	directory := &memDirectory{users: map[string]model.User{
		testAdminID:  {ID: testAdminID, IsAdmin: true},
		testMemberID: {ID: testMemberID},
	}}
	return NewAdminHandler(nil, nil, userssvc.NewService(directory, nil)), directory
}

func TestSetAdminSelfDemotionRejected(t *testing.T) {
	handler, directory := newUsersAdminHandler()

	body := []byte(`{"value": false}`)
	req := withURLParam(authedRequest(http.MethodPost, "/v1/admin/users/"+testAdminID+"/admin", testAdminID, body), "id", testAdminID)
	rr := httptest.NewRecorder()
	handler.SetAdmin(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d body %s", rr.Code, rr.Body.String())
	}

	var apiErr httperrors.APIError
	if err := json.Unmarshal(rr.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if apiErr.Code != "SELF_DEMOTION" {
		t.Fatalf("unexpected error code: %s", apiErr.Code)
	}
	if !directory.users[testAdminID].IsAdmin {
		t.Fatalf("self-demotion mutated the flag")
	}
}

func TestSetVerifiedByAdmin(t *testing.T) {
	handler, directory := newUsersAdminHandler()

	body := []byte(`{"value": true}`)
	req := withURLParam(authedRequest(http.MethodPost, "/v1/admin/users/"+testMemberID+"/verify", testAdminID, body), "id", testMemberID)
	rr := httptest.NewRecorder()
	handler.SetVerified(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d body %s", rr.Code, rr.Body.String())
	}
	if !directory.users[testMemberID].IsVerified {
		t.Fatalf("flag not set")
	}
}

func TestUsersListForbiddenForMember(t *testing.T) {
	handler, _ := newUsersAdminHandler()

	req := authedRequest(http.MethodGet, "/v1/admin/users", testMemberID, nil)
	rr := httptest.NewRecorder()
	handler.Users(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusForbidden)
	}
}
