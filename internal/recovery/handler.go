package recovery

import (
	"net/http"
	"time"

	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"
	"github.com/mfarag11047/RepCoach/pkg"

	log "github.com/sirupsen/logrus"
)

type StatusResponse struct {
	At     time.Time     `json:"at"`
	Status GroupedStatus `json:"status"`
	States []MuscleState `json:"states"`
}

type Handler struct {
	service *Service
	now     func() time.Time
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

// HandleStatus returns the recovery status, as of now or of the
// RFC 3339 time given in the "at" query param.
func (handler *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.status")
	defer span.End()

	at := handler.now()
	if atParam := r.URL.Query().Get("at"); atParam != "" {
		parsed, err := time.Parse(time.RFC3339, atParam)
		if err != nil {
			http.Error(w, "invalid <at> param, expected RFC 3339 time", http.StatusBadRequest)
			return
		}
		at = parsed
	}

	status, err := handler.service.Status(ctx, at)
	if err != nil {
		log.Errorf("get recovery status: %s", err)
		http.Error(w, "failed to get recovery status", http.StatusInternalServerError)
		return
	}

	if err := pkg.WriteJSON(w, StatusResponse{
		At:     at,
		Status: status,
		States: status.States(),
	}, http.StatusOK); err != nil {
		log.Errorf("marshal recovery status: %s", err)
		http.Error(w, "failed to get recovery status", http.StatusInternalServerError)
	}
}
