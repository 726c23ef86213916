package getAllActivities

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"activitySignup/internal/lib/api/response"
	"activitySignup/internal/lib/logger/sl"
	"activitySignup/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ActivitiesGetter
type ActivitiesGetter interface {
	GetAllActivities() (map[string]models.Activity, error)
}

// New returns the activity roster as a bare name-to-activity JSON object.
// The frontend consumes the mapping directly, so there is no envelope here.
func New(log *slog.Logger, activitiesGetter ActivitiesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.getAllActivities.New"

		log = log.With(slog.String("op", op))

		activities, err := activitiesGetter.GetAllActivities()
		if err != nil {
			log.Error("failed to get activities", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get activities"))
			return
		}

		log.Info("activities retrieved", slog.Int("count", len(activities)))

		render.JSON(w, r, activities)
	}
}
