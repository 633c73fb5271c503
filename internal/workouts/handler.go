package workouts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"
	"github.com/mfarag11047/RepCoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DeleteWorkoutResponse struct {
	DeletedKey string `json:"deletedKey"`
}

type HistoryPageResponse struct {
	Workouts []Entry `json:"workouts"`
	Total    int     `json:"total"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.finish")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req FinishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("finish workout, unmarshal json params: %s", err)
		http.Error(w, "finish workout failed", http.StatusBadRequest)
		return
	}

	entry, err := handler.service.FinishWorkout(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyWorkout):
			http.Error(w, "error, workout has no logged sets", http.StatusBadRequest)
		case errors.Is(err, ErrWorkoutExists):
			http.Error(w, "error, workout already saved", http.StatusConflict)
		default:
			log.Errorf("failed to finish workout: %s", err)
			http.Error(w, "error, failed to save workout", http.StatusInternalServerError)
		}
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal finished workout: %s", err)
		http.Error(w, "error, failed to save workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "error, key empty", http.StatusBadRequest)
		return
	}

	entry, err := handler.service.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout [%s]: %s", key, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, entryJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "error, key empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, key); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout [%s]: %s", key, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{
		DeletedKey: key,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleHistoryPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.history_page")
	defer span.End()

	vars := mux.Vars(r)

	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Errorf("handle get history page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Errorf("handle get history page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page size (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	log.Tracef("list workouts - page %s size %s", pageStr, sizeStr)

	entries, total, err := handler.service.List(ctx, ListParams{Page: page, Size: size})
	if err != nil {
		log.Errorf("list workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(HistoryPageResponse{
		Workouts: entries,
		Total:    total,
	})
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(respJson))
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.progress")
	defer span.End()

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, "invalid period, use one of: 1M, 3M, 1Y, All", http.StatusBadRequest)
		return
	}

	progress, err := handler.service.Progress(ctx, period)
	if err != nil {
		log.Errorf("get progress [%s]: %s", period, err)
		http.Error(w, "failed to get progress", http.StatusInternalServerError)
		return
	}

	progressJson, err := json.Marshal(progress)
	if err != nil {
		log.Errorf("marshal progress: %s", err)
		http.Error(w, "failed to get progress", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, progressJson)
}
