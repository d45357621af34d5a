package repo

import "errors"

var (
	ErrNotFound    = errors.New("resource not found")
	ErrTeamExists  = errors.New("team with this name already exists")
	ErrPRExists    = errors.New("pull request with this id already exists")
	ErrPRMerged    = errors.New("pull request is already merged")
	ErrNotAssigned = errors.New("reviewer is not assigned to this pull request")
	ErrNoCandidate = errors.New("no eligible reviewer candidate in team")
)
