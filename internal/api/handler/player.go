package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/thirtyone-go/internal/api/middleware"
	"github.com/mcoot/thirtyone-go/internal/api/request"
	"github.com/mcoot/thirtyone-go/internal/api/response"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/services/auth"
	"github.com/mcoot/thirtyone-go/internal/services/game"
	"github.com/mcoot/thirtyone-go/internal/services/player"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	authService   *auth.Service
	playerService *player.Service
	gameService   game.ControllerInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service, playerService *player.Service, gameService game.ControllerInterface) *PlayerHandler {
	return &PlayerHandler{
		authService:   authService,
		playerService: playerService,
		gameService:   gameService,
	}
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Register(r.Context(), model.PlayerName(req.Name), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), model.PlayerName(req.Name), req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// GetMyGames handles GET /api/v1/players/me/games
func (h *PlayerHandler) GetMyGames(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	games, err := h.gameService.GamesForPlayer(r.Context(), player.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameListFromModel(games))
}

// Rankings handles GET /api/v1/players/rankings
func (h *PlayerHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.Rankings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RankingsFromModel(players))
}
