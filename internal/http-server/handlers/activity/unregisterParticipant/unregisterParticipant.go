package unregisterParticipant

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"activitySignup/internal/lib/api/response"
	"activitySignup/internal/lib/logger/sl"
	"activitySignup/internal/metrics"
	"activitySignup/internal/storage"
)

type UnregisterRequest struct {
	Email string `validate:"required,email"`
}

type UnregisterResponse struct {
	response.Response
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ParticipantRemover
type ParticipantRemover interface {
	Unregister(activity, email string) error
}

func New(log *slog.Logger, remover ParticipantRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.unregisterParticipant.New"

		log = log.With(slog.String("op", op))

		name := chi.URLParam(r, "name")
		if name == "" {
			log.Error("activity name is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("activity name is required"))
			return
		}

		log = log.With(slog.String("activity", name))

		req := UnregisterRequest{Email: r.URL.Query().Get("email")}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid email", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if err := remover.Unregister(name, req.Email); err != nil {
			log.Error("failed to unregister", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrActivityNotFound):
				metrics.RecordRejection("unregister", "not_found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Activity not found"))
			case errors.Is(err, storage.ErrNotSignedUp):
				metrics.RecordRejection("unregister", "not_signed_up")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Student not signed up for this activity"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to unregister from activity"))
			}
			return
		}

		metrics.RecordUnregister(name)

		log.Info("participant unregistered", slog.String("email", req.Email))

		responseOK(w, r, fmt.Sprintf("Unregistered %s from %s", req.Email, name))
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, message string) {
	render.JSON(w, r, UnregisterResponse{
		Response: response.OK(),
		Message:  message,
	})
}
