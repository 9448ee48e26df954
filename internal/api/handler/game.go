package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/thirtyone-go/internal/api/middleware"
	"github.com/mcoot/thirtyone-go/internal/api/request"
	"github.com/mcoot/thirtyone-go/internal/api/response"
	"github.com/mcoot/thirtyone-go/internal/gameref"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/services/game"
)

// Defaults applied when a create request omits the optional settings
const (
	defaultStartingValue = 0
	defaultTargetValue   = 31
	defaultMaxIncrement  = 3
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// refFromRequest decodes the opaque game reference from the URL path
func refFromRequest(r *http.Request) (model.GameID, error) {
	return gameref.Decode(mux.Vars(r)["ref"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if len(req.Players) == 0 {
		WriteError(w, NewInvalidRequestError("players is required"))
		return
	}

	starting := defaultStartingValue
	if req.StartingValue != nil {
		starting = *req.StartingValue
	}
	target := defaultTargetValue
	if req.TargetValue != nil {
		target = *req.TargetValue
	}
	maxIncrement := defaultMaxIncrement
	if req.MaxIncrement != nil {
		maxIncrement = *req.MaxIncrement
	}

	others := make([]model.PlayerName, len(req.Players))
	for i, p := range req.Players {
		others[i] = model.PlayerName(p)
	}

	g, err := h.gameController.CreateGame(r.Context(), player.Name, others, starting, target, maxIncrement)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{ref}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID, err := refFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// GetHistory handles GET /api/v1/games/{ref}/history
func (h *GameHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	gameID, err := refFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	moves, err := h.gameController.GetHistory(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryFromModel(moves))
}

// GetScores handles GET /api/v1/games/{ref}/scores
func (h *GameHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	gameID, err := refFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	scores, err := h.gameController.GetScores(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Score, len(scores))
	for i, s := range scores {
		out[i] = response.Score{
			Player: string(s.Player),
			Points: s.Points,
			Won:    s.Won,
		}
	}
	response.JSON(w, http.StatusOK, out)
}

// Move handles POST /api/v1/games/{ref}/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	gameID, err := refFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.gameController.ApplyMove(r.Context(), gameID, player.Name, req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if !outcome.Accepted() {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(w, status, response.MoveResultFromOutcome(outcome))
}

// Quit handles POST /api/v1/games/{ref}/quit
func (h *GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	gameID, err := refFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	outcome, err := h.gameController.Quit(r.Context(), gameID, player.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResultFromOutcome(outcome))
}
