package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/services"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrUserNotFound, http.StatusNotFound},
		{services.ErrEventNotFound, http.StatusNotFound},
		{services.ErrRequestNotFound, http.StatusNotFound},
		{services.ErrTeamNotFound, http.StatusNotFound},
		{services.ErrEmailTaken, http.StatusConflict},
		{services.ErrEventAlreadyJoined, http.StatusConflict},
		{services.ErrAlreadyTeamMember, http.StatusConflict},
		{services.ErrCredentialsRequired, http.StatusBadRequest},
		{services.ErrEventFieldsRequired, http.StatusBadRequest},
		{services.ErrInvalidUrgency, http.StatusBadRequest},
		{services.ErrCommentTextRequired, http.StatusBadRequest},
		{services.ErrTeamNameRequired, http.StatusBadRequest},
		{services.ErrUploadsNotConfigured, http.StatusBadRequest},
		{services.ErrUnsupportedFileType, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrNotTeamMember, http.StatusForbidden},
		{services.ErrNotInvited, http.StatusForbidden},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		mapServiceErrorToHTTP(w, r, tc.err)
		require.Equal(t, tc.status, w.Code, "error %v", tc.err)
		require.Contains(t, w.Header().Get("Content-Type"), "application/json")
	}
}

func TestMapServiceErrorToHTTP_UnknownErrorIsGeneric(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	mapServiceErrorToHTTP(w, r, fmt.Errorf("pq: connection refused"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal details never reach the client.
	require.NotContains(t, w.Body.String(), "connection refused")
}

func TestMapServiceErrorToHTTP_WrappedError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	mapServiceErrorToHTTP(w, r, fmt.Errorf("join team: %w", services.ErrNotInvited))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	newReq := func(body string) (*httptest.ResponseRecorder, *http.Request) {
		return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}

	var dst payload
	w, r := newReq(`{"title": "Park Cleanup"}`)
	require.NoError(t, readJSON(w, r, &dst))
	require.Equal(t, "Park Cleanup", dst.Title)

	w, r = newReq(`{"title": "x", "bogus": true}`)
	err := readJSON(w, r, &payload{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown key")

	w, r = newReq(``)
	err = readJSON(w, r, &payload{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be empty")

	w, r = newReq(`{"title": "x"}{"title": "y"}`)
	err = readJSON(w, r, &payload{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "single JSON value")

	w, r = newReq(`{"title": 5}`)
	err = readJSON(w, r, &payload{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "incorrect JSON type")
}
