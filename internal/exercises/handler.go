package exercises

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"
	"github.com/mfarag11047/RepCoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// maxLibrarySize limits custom library uploads to 5MB.
const maxLibrarySize = 5 << 20

type DeleteExerciseResponse struct {
	DeletedID string `json:"deletedId"`
}

type LibraryResponse struct {
	Exercises []Exercise `json:"exercises"`
	Total     int        `json:"total"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	library, err := handler.service.Library(ctx)
	if err != nil {
		log.Errorf("list exercises error: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	if err := pkg.WriteJSON(w, LibraryResponse{
		Exercises: library,
		Total:     len(library),
	}, http.StatusOK); err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Errorf("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	added, err := handler.service.AddUserExercise(ctx, exercise)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidExercise):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrExerciseExists):
			http.Error(w, "error, exercise already exists", http.StatusConflict)
		default:
			log.Errorf("failed to add new exercise [%s]: %s", exercise.Name, err)
			http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("new exercise added: [%s] [%s]", added.ID, added.PrimaryMuscle)

	if err := pkg.WriteJSON(w, added, http.StatusCreated); err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete exercise [%s]: %s", id, err)
		http.Error(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	if err := pkg.WriteJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK); err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
	}
}

// HandleReplaceLibrary activates the custom library given as a JSON array.
func (handler *Handler) HandleReplaceLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.replace_library")
	defer span.End()

	data, err := io.ReadAll(io.LimitReader(r.Body, maxLibrarySize))
	if err != nil {
		log.Errorf("replace library, read body: %s", err)
		http.Error(w, "failed to read library", http.StatusBadRequest)
		return
	}

	library, err := ParseLibrary(data)
	if err != nil {
		log.Debugf("replace library, invalid library: %s", err)
		http.Error(w, "invalid library: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.ReplaceLibrary(ctx, library); err != nil {
		log.Errorf("replace library: %s", err)
		http.Error(w, "failed to replace library", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "library replaced")
}

func (handler *Handler) HandleResetLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.reset_library")
	defer span.End()

	if err := handler.service.Reset(ctx); err != nil {
		log.Errorf("reset library: %s", err)
		http.Error(w, "failed to reset library", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "library reset")
}

func (handler *Handler) HandleMuscles(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.muscles")
	defer span.End()

	muscles, err := handler.service.KnownMuscles(ctx)
	if err != nil {
		log.Errorf("get known muscles: %s", err)
		http.Error(w, "failed to get muscles", http.StatusInternalServerError)
		return
	}

	if err := pkg.WriteJSON(w, muscles, http.StatusOK); err != nil {
		log.Errorf("marshal muscles: %s", err)
		http.Error(w, "failed to get muscles", http.StatusInternalServerError)
	}
}
