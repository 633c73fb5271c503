package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"
	"github.com/mfarag11047/RepCoach/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	p, err := h.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not set", http.StatusNotFound)
			return
		}
		log.Errorf("get profile: %s", err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	if err := pkg.WriteJSON(w, p, http.StatusOK); err != nil {
		log.Errorf("marshal profile: %s", err)
		http.Error(w, "marshal error", http.StatusInternalServerError)
	}
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save")
	defer span.End()

	var p UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Errorf("save profile, decode: %s", err)
		http.Error(w, "invalid profile json", http.StatusBadRequest)
		return
	}
	if err := p.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.Save(ctx, p); err != nil {
		log.Errorf("save profile: %s", err)
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("profile saved for [%s]", p.Name)
	if err := pkg.WriteJSON(w, p, http.StatusOK); err != nil {
		log.Errorf("marshal profile: %s", err)
	}
}

func (h *Handler) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get_preferences")
	defer span.End()

	prefs, err := h.repo.GetPreferences(ctx)
	if err != nil {
		log.Errorf("get preferences: %s", err)
		http.Error(w, "failed to get preferences", http.StatusInternalServerError)
		return
	}

	if err := pkg.WriteJSON(w, prefs, http.StatusOK); err != nil {
		log.Errorf("marshal preferences: %s", err)
		http.Error(w, "marshal error", http.StatusInternalServerError)
	}
}

func (h *Handler) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save_preferences")
	defer span.End()

	var prefs Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		log.Errorf("save preferences, decode: %s", err)
		http.Error(w, "invalid preferences json", http.StatusBadRequest)
		return
	}

	if err := h.repo.SavePreferences(ctx, prefs); err != nil {
		log.Errorf("save preferences: %s", err)
		http.Error(w, "failed to save preferences", http.StatusInternalServerError)
		return
	}

	if err := pkg.WriteJSON(w, prefs.Normalize(), http.StatusOK); err != nil {
		log.Errorf("marshal preferences: %s", err)
	}
}
