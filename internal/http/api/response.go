package api

import (
	"fmt"
	"strings"

	"review-rotation-service/internal/metrics"

	"github.com/go-playground/validator/v10"
)

const (
	ErrInternalErr     = "INTERNAL_ERROR"
	ErrValidationErr   = "VALIDATION_ERROR"
	ErrBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeTeamExists  = "TEAM_EXISTS"
	ErrCodePRExists    = "PR_EXISTS"
	ErrCodePRMerged    = "PR_MERGED"
	ErrCodeNotAssigned = "NOT_ASSIGNED"
	ErrCodeNoCandidate = "NO_CANDIDATE"
	ErrCodeAdminAuth   = "ADMIN_AUTH"
	ErrCodeUserAuth    = "USER_AUTH"
)

type TeamResponse struct {
	Team TeamSchema `json:"team"`
}

type UserResponse struct {
	User UserSchema `json:"user"`
}

type PrResponse struct {
	PullRequest PullRequestSchema `json:"pr"`
}

type ReassignResponse struct {
	PullRequest PullRequestSchema `json:"pr"`
	ReplacedBy  string            `json:"replaced_by"`
}

type GetReviewResponse struct {
	UserID       string             `json:"user_id"`
	IsActive     bool               `json:"is_active"`
	CurrentLoad  int                `json:"current_load"`
	PullRequests []PullRequestShort `json:"pull_requests"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Error(code string, msg string) ErrorResponse {
	if code != ErrInternalErr {
		metrics.BusinessErrors.WithLabelValues(code).Inc()
	}

	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: msg,
		},
	}
}

func InternalError() ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    ErrInternalErr,
			Message: "internal server error",
		},
	}
}

func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errMsgs []string
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field '%s' is required", err.Field()))
		case "min":
			errMsgs = append(
				errMsgs,
				fmt.Sprintf("field '%s' must contain at least %s items", err.Field(), err.Param()),
			)
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field '%s' is not valid", err.Field()))
		}
	}

	metrics.BusinessErrors.WithLabelValues(ErrValidationErr).Inc()

	return ErrorResponse{
		Error: ErrorDetail{
			Code:    ErrValidationErr,
			Message: strings.Join(errMsgs, ", "),
		},
	}
}
