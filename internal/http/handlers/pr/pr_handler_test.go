package pr

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"review-rotation-service/internal/http/api"
	"review-rotation-service/internal/http/handlers"
	"review-rotation-service/internal/http/handlers/mocks"
	repo "review-rotation-service/internal/repository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateHandler_Success(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Create", mock.Anything, "pr-1", "Add search endpoint", "u1").
		Return(&api.PullRequestSchema{
			ID:                "pr-1",
			Name:              "Add search endpoint",
			AuthorID:          "u1",
			Status:            "OPEN",
			AssignedReviewers: []string{"u2", "u3"},
		}, nil)

	body := `{"pull_request_id":"pr-1","pull_request_name":"Add search endpoint","author_id":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/create", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.PrResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "pr-1", resp.PullRequest.ID)
	require.Equal(t, []string{"u2", "u3"}, resp.PullRequest.AssignedReviewers)
}

func TestCreateHandler_MissingAuthor(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	body := `{"pull_request_id":"pr-1","pull_request_name":"No author"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/create", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.ErrValidationErr, handlers.DecodeErrorResponse(t, rec.Body).Error.Code)
	service.AssertNotCalled(t, "Create")
}

func TestCreateHandler_DuplicateID(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Create", mock.Anything, "pr-1", "Twice", "u1").Return(nil, repo.ErrPRExists)

	body := `{"pull_request_id":"pr-1","pull_request_name":"Twice","author_id":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/create", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.ErrCodePRExists, handlers.DecodeErrorResponse(t, rec.Body).Error.Code)
}

func TestCreateHandler_NoCandidate(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Create", mock.Anything, "pr-1", "Lonely", "u1").Return(nil, repo.ErrNoCandidate)

	body := `{"pull_request_id":"pr-1","pull_request_name":"Lonely","author_id":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/create", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.ErrCodeNoCandidate, handlers.DecodeErrorResponse(t, rec.Body).Error.Code)
}

func TestCreateHandler_UnknownAuthor(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Create", mock.Anything, "pr-1", "Ghost", "ghost").Return(nil, repo.ErrNotFound)

	body := `{"pull_request_id":"pr-1","pull_request_name":"Ghost","author_id":"ghost"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/create", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, api.ErrCodeNotFound, handlers.DecodeErrorResponse(t, rec.Body).Error.Code)
}

func TestMergeHandler_Success(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Merge", mock.Anything, "pr-1").
		Return(&api.PullRequestSchema{
			ID:                "pr-1",
			Status:            "MERGED",
			AssignedReviewers: []string{"u2"},
		}, nil)

	body := `{"pull_request_id":"pr-1"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/merge", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Merge(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.PrResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "MERGED", resp.PullRequest.Status)
}

func TestMergeHandler_AlreadyMerged(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Merge", mock.Anything, "pr-1").Return(nil, repo.ErrPRMerged)

	body := `{"pull_request_id":"pr-1"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/merge", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Merge(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.ErrCodePRMerged, handlers.DecodeErrorResponse(t, rec.Body).Error.Code)
}

func TestReassignHandler_Success(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Reassign", mock.Anything, "pr-1", "u2").
		Return(&api.ReassignResponse{
			PullRequest: api.PullRequestSchema{
				ID:                "pr-1",
				Status:            "OPEN",
				AssignedReviewers: []string{"u5", "u3"},
			},
			ReplacedBy: "u5",
		}, nil)

	body := `{"pull_request_id":"pr-1","old_user_id":"u2"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/reassign", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Reassign(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ReassignResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "u5", resp.ReplacedBy)
	require.Equal(t, []string{"u5", "u3"}, resp.PullRequest.AssignedReviewers)
}

func TestReassignHandler_NotAssigned(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Reassign", mock.Anything, "pr-1", "u2").Return(nil, repo.ErrNotAssigned)

	body := `{"pull_request_id":"pr-1","old_user_id":"u2"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/reassign", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Reassign(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.ErrCodeNotAssigned, handlers.DecodeErrorResponse(t, rec.Body).Error.Code)
}

func TestReassignHandler_NoCandidate(t *testing.T) {
	service := mocks.NewMockPrService(t)
	h := NewPrHandler(handlers.NewLogger(), service)

	service.On("Reassign", mock.Anything, "pr-1", "u2").Return(nil, repo.ErrNoCandidate)

	body := `{"pull_request_id":"pr-1","old_user_id":"u2"}`
	req := httptest.NewRequest(http.MethodPost, "/pullRequest/reassign", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Reassign(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.ErrCodeNoCandidate, handlers.DecodeErrorResponse(t, rec.Body).Error.Code)
}
