package team

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"review-rotation-service/internal/http/api"
	"review-rotation-service/internal/lib/sl"
	repo "review-rotation-service/internal/repository"
	teamsvc "review-rotation-service/internal/service/team"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type teamService interface {
	Add(ctx context.Context, teamName string, users []api.TeamMember) (*api.TeamSchema, error)
	Get(ctx context.Context, teamName string) (*api.TeamSchema, error)
	Deactivate(ctx context.Context, teamName string) (*api.TeamSchema, error)
}

type TeamHandler struct {
	log     *slog.Logger
	service teamService
}

func NewTeamHandler(log *slog.Logger, s teamService) *TeamHandler {
	return &TeamHandler{
		log:     log,
		service: s,
	}
}

type TeamMemberRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username" validate:"required"`
	IsActive bool   `json:"is_active"`
}

type TeamAddRequest struct {
	TeamName string              `json:"team_name" validate:"required"`
	Members  []TeamMemberRequest `json:"members" validate:"required,min=1,dive"`
}

func (h *TeamHandler) Add(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.team.Add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ctx := r.Context()

	var input TeamAddRequest
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		log.Error("failed to decode request body", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(api.ErrBadRequest, "bad request"))
		return
	}

	if err := validator.New().Struct(input); err != nil {
		validateError := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(validateError))
		return
	}

	members := make([]api.TeamMember, 0, len(input.Members))
	for _, m := range input.Members {
		members = append(members, api.TeamMember{
			UserID:   m.UserID,
			Username: m.Username,
			IsActive: m.IsActive,
		})
	}

	resp, err := h.service.Add(ctx, input.TeamName, members)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrTeamExists):
			log.Info("team exists", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error(api.ErrCodeTeamExists, err.Error()))

		case errors.Is(err, teamsvc.ErrDuplicateMember):
			log.Info("duplicate member ids", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error(api.ErrValidationErr, err.Error()))

		default:
			log.Error("error while saving team", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, api.InternalError())
		}
		return
	}

	log.Info("team created successfully")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.TeamResponse{Team: *resp})
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.team.Get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ctx := r.Context()

	teamName := r.URL.Query().Get("team_name")
	if teamName == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(api.ErrBadRequest, "team_name is required"))
		return
	}

	resp, err := h.service.Get(ctx, teamName)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Info("team not found", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, api.Error(api.ErrCodeNotFound, err.Error()))
			return
		}
		log.Error("error while retrieving team", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, api.InternalError())
		return
	}

	render.JSON(w, r, resp)
}

type DeactivateRequest struct {
	TeamName string `json:"team_name" validate:"required"`
}

func (h *TeamHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.team.Deactivate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ctx := r.Context()

	var input DeactivateRequest
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		log.Error("failed to decode request body", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(api.ErrBadRequest, "bad request"))
		return
	}

	if err := validator.New().Struct(input); err != nil {
		validateError := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(validateError))
		return
	}

	resp, err := h.service.Deactivate(ctx, input.TeamName)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Info("team not found", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, api.Error(api.ErrCodeNotFound, err.Error()))
			return
		}
		log.Error("error while deactivating team", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, api.InternalError())
		return
	}

	log.Info("team deactivated")
	render.JSON(w, r, api.TeamResponse{Team: *resp})
}
