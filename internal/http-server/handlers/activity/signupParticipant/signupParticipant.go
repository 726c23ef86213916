package signupParticipant

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

// The email travels as a query parameter, not a JSON body; the struct exists
// so it still goes through the validator.
type SignupRequest struct {
	Email string `validate:"required,email"`
}

type SignupResponse struct {
	response.Response
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ParticipantSigner
type ParticipantSigner interface {
	SignUp(activity, email string) error
}

func New(log *slog.Logger, signer ParticipantSigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.signupParticipant.New"

		log = log.With(slog.String("op", op))

		name := chi.URLParam(r, "name")
		if name == "" {
			log.Error("activity name is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("activity name is required"))
			return
		}

		log = log.With(slog.String("activity", name))

		req := SignupRequest{Email: r.URL.Query().Get("email")}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid email", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if err := signer.SignUp(name, req.Email); err != nil {
			log.Error("failed to sign up", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrActivityNotFound):
				metrics.RecordRejection("signup", "not_found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Activity not found"))
			case errors.Is(err, storage.ErrAlreadySignedUp):
				metrics.RecordRejection("signup", "duplicate")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Student already signed up for this activity"))
			case errors.Is(err, storage.ErrActivityFull):
				metrics.RecordRejection("signup", "full")
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("Activity is full"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to sign up for activity"))
			}
			return
		}

		metrics.RecordSignup(name)

		log.Info("participant signed up", slog.String("email", req.Email))

		responseOK(w, r, fmt.Sprintf("Signed up %s for %s", req.Email, name))
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, message string) {
	render.JSON(w, r, SignupResponse{
		Response: response.OK(),
		Message:  message,
	})
}
