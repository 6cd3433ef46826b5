package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/medtrack/medminder/internal/domain/contract"
)

// Handler serves the JSON data-entry API. It only talks to the medication
// service, so every mutation shares the schedulers' save path.
type Handler struct {
	medications contract.MedicationService
}

func New(medications contract.MedicationService) *Handler {
	return &Handler{medications: medications}
}

// Register wires all routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /users", h.handleAddUser)
	mux.HandleFunc("GET /users", h.handleListUsers)
	mux.HandleFunc("GET /users/{username}", h.handleGetUser)
	mux.HandleFunc("DELETE /users/{username}", h.handleRemoveUser)
	mux.HandleFunc("POST /users/{username}/medications", h.handleAddMedication)
	mux.HandleFunc("DELETE /users/{username}/medications/{name}", h.handleRemoveMedication)
	mux.HandleFunc("GET /users/{username}/medications/upcoming", h.handleUpcoming)
	mux.HandleFunc("GET /export", h.handleExport)
	mux.HandleFunc("POST /import", h.handleImport)
}

type addUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Carrier     string `json:"carrier"`
}

func (h *Handler) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.medications.AddUser(r.Context(), req.Username, req.Email, req.PhoneNumber, req.Carrier)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	usernames, err := h.medications.ListUsers()
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if usernames == nil {
		usernames = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"users": usernames})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.medications.GetUser(r.PathValue("username"))
	if err != nil {
		log.Printf("Failed to get user: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	if err := h.medications.RemoveUser(r.Context(), r.PathValue("username")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddMedication(w http.ResponseWriter, r *http.Request) {
	var input contract.MedicationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	med, err := h.medications.AddMedication(r.Context(), r.PathValue("username"), input)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, med)
}

func (h *Handler) handleRemoveMedication(w http.ResponseWriter, r *http.Request) {
	err := h.medications.RemoveMedication(r.Context(), r.PathValue("username"), r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	upcoming, err := h.medications.UpcomingToday(r.PathValue("username"), time.Now())
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"upcoming": upcoming})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.medications.Export(w); err != nil {
		log.Printf("Export failed: %v", err)
	}
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := h.medications.Import(r.Context(), r.Body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
