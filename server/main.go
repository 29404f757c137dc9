package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/icco/gutil/logging"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"github.com/unrolled/render"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/dcampbell24/libgo"
)

var (
	// Renderer is a renderer for all occasions. These are our preferred default options.
	// See:
	//  - https://github.com/unrolled/render/blob/v1/README.md
	//  - https://godoc.org/gopkg.in/unrolled/render.v1
	Renderer = render.New(render.Options{
		Charset:                   "UTF-8",
		DisableHTTPErrorRendering: false,
		IndentJSON:                false,
		IndentXML:                 true,
	})

	log       = logging.Must(logging.NewLogger(libgo.Service))
	ugcPolicy = bluemonday.StrictPolicy()

	gamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "libgo_games_created_total",
		Help: "Number of games created.",
	})
	movesPlayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "libgo_moves_played_total",
		Help: "Number of moves accepted, passes included.",
	})
)

func main() {
	setupConfig()
	port := viper.GetString("PORT")
	log.Infow("Starting up", "host", fmt.Sprintf("http://localhost:%s", port))

	isDev := viper.GetString("NAT_ENV") != "production"

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(log.Desugar()))

	if _, err := getDB(); err != nil {
		log.Panicw("could not get db", zap.Error(err))
		return
	}

	r.Use(cors.New(cors.Options{
		AllowCredentials:   true,
		OptionsPassthrough: true,
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:     []string{"Link"},
		MaxAge:             300, // Maximum value not ignored by any of major browsers
	}).Handler)

	r.NotFound(notFoundHandler)

	// Stuff that does not ssl redirect
	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:   true,
			ContentTypeNosniff: true,
			FrameDeny:          true,
			HostsProxyHeaders:  []string{"X-Forwarded-Host"},
			IsDevelopment:      isDev,
			SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		}).Handler)

		r.Get("/healthz", healthCheckHandler)
		r.Get("/metricz", promhttp.Handler().ServeHTTP)
	})

	// Everything that does SSL only
	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:     true,
			ContentTypeNosniff:   true,
			FrameDeny:            true,
			HostsProxyHeaders:    []string{"X-Forwarded-Host"},
			IsDevelopment:        isDev,
			SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
			SSLRedirect:          !isDev,
			STSIncludeSubdomains: true,
			STSPreload:           true,
			STSSeconds:           315360000,
		}).Handler)

		r.Get("/", rootHandler)
		r.Post("/auth/register", registerHandler)
		r.Post("/auth/login", loginHandler)
		r.Get("/game/{slug}", getGameHandler)
		r.Get("/game/{slug}/legal", legalMovesHandler)
		r.Get("/game/{slug}/render", renderGameHandler)
		r.Get("/game/{slug}/live", liveGameHandler)

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth)
			r.Post("/games", newGameHandler)
			r.Post("/game/{slug}/move", newMoveHandler)
			r.Post("/game/{slug}/undo", undoMoveHandler)
		})
	})

	log.Fatal(http.ListenAndServe(":"+port, r))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`
<html>
  <head>
    <title>libgo</title>
  </head>
  <body>
    <h1>libgo</h1>
    <ul>
      <li>Post "/games"</li>
      <li>Get "/game/{slug}"</li>
      <li>Get "/game/{slug}/legal"</li>
      <li>Get "/game/{slug}/render"</li>
      <li>Get "/game/{slug}/live"</li>
      <li>Post "/game/{slug}/move"</li>
      <li>Post "/game/{slug}/undo"</li>
    </ul>
  </body>
</html>
  `))
}

// GameState is the full JSON view of a game: the stored row plus the
// state derived from replaying its moves.
type GameState struct {
	*Game
	Board      string `json:"board"`
	NextPlayer string `json:"next_player"`
	Over       bool   `json:"over"`
	Value      int    `json:"value"`
	MoveCount  int    `json:"move_count"`
}

func gameState(row *Game, game *libgo.Game) *GameState {
	return &GameState{
		Game:       row,
		Board:      game.Board().String(),
		NextPlayer: game.NextPlayer().String(),
		Over:       game.IsOver(),
		Value:      game.Value(),
		MoveCount:  len(game.Moves()),
	}
}

// CreateGameRequest represents the request body for creating a new game.
type CreateGameRequest struct {
	Size int     `json:"size"`
	Komi float64 `json:"komi"`
}

func newGameHandler(w http.ResponseWriter, r *http.Request) {
	db, err := getDB()
	if err != nil {
		log.Errorw("could not get db", zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": "bad connection to db"})
		return
	}

	var data CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data.Size == 0 {
		data.Size = 19
	}

	slug, err := createGame(db, data.Size, data.Komi, currentUserID(r))
	if err != nil {
		log.Errorw("could not create game", zap.Error(err))
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	gamesCreated.Inc()

	http.Redirect(w, r, fmt.Sprintf("/game/%s", slug), http.StatusTemporaryRedirect)
}

// MoveRequest represents the request body for making a move.
type MoveRequest struct {
	Player string `json:"player"`
	Vertex string `json:"vertex"`
}

func newMoveHandler(w http.ResponseWriter, r *http.Request) {
	db, err := getDB()
	if err != nil {
		log.Errorw("could not get db", zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": "bad connection to db"})
		return
	}

	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))
	row, game, err := getGame(db, slug)
	if err != nil {
		log.Errorw("could not get game", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	var data MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		log.Errorw("could not read body", zap.Error(err))
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	player, err := libgo.ParsePlayer(data.Player)
	if err != nil {
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var move libgo.Move
	if strings.EqualFold(data.Vertex, "pass") || data.Vertex == "" {
		move = libgo.Pass(player)
	} else {
		vertex, err := libgo.ParseVertex(strings.ToUpper(data.Vertex))
		if err != nil {
			Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		move = libgo.PlayAt(player, vertex)
	}

	if err := game.Play(move); err != nil {
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := insertMove(db, row.ID, len(game.Moves()), move); err != nil {
		log.Errorw("bad insert", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	movesPlayed.Inc()

	if game.IsOver() {
		if err := updateGameStatus(db, slug, "finished"); err != nil {
			log.Errorw("could not update status", "slug", slug, zap.Error(err))
		}
		row.Status = "finished"
	}

	state := gameState(row, game)
	liveHub.broadcast(slug, state)
	Renderer.JSON(w, http.StatusOK, state)
}

func undoMoveHandler(w http.ResponseWriter, r *http.Request) {
	db, err := getDB()
	if err != nil {
		log.Errorw("could not get db", zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": "bad connection to db"})
		return
	}

	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))
	row, game, err := getGame(db, slug)
	if err != nil {
		log.Errorw("could not get game", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	if err := game.Undo(); err != nil {
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := deleteLastMove(db, row.ID); err != nil {
		log.Errorw("could not delete move", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if row.Status != "active" {
		if err := updateGameStatus(db, slug, "active"); err != nil {
			log.Errorw("could not update status", "slug", slug, zap.Error(err))
		}
		row.Status = "active"
	}
	row.Moves = row.Moves[:len(row.Moves)-1]

	state := gameState(row, game)
	liveHub.broadcast(slug, state)
	Renderer.JSON(w, http.StatusOK, state)
}

func getGameHandler(w http.ResponseWriter, r *http.Request) {
	db, err := getDB()
	if err != nil {
		log.Errorw("could not get db", zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": "bad connection to db"})
		return
	}

	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))
	row, game, err := getGame(db, slug)
	if err != nil {
		log.Errorw("could not get game", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	Renderer.JSON(w, http.StatusOK, gameState(row, game))
}

func legalMovesHandler(w http.ResponseWriter, r *http.Request) {
	db, err := getDB()
	if err != nil {
		log.Errorw("could not get db", zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": "bad connection to db"})
		return
	}

	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))
	_, game, err := getGame(db, slug)
	if err != nil {
		log.Errorw("could not get game", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	color := r.URL.Query().Get("color")
	if color == "" {
		color = game.NextPlayer().String()
	}
	player, err := libgo.ParsePlayer(color)
	if err != nil {
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	verts := game.AllLegalMoves(player)
	moves := make([]string, len(verts))
	for i, v := range verts {
		moves[i] = v.String()
	}
	Renderer.JSON(w, http.StatusOK, map[string]interface{}{
		"player": player.String(),
		"moves":  moves,
	})
}

func renderGameHandler(w http.ResponseWriter, r *http.Request) {
	db, err := getDB()
	if err != nil {
		log.Errorw("could not get db", zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": "bad connection to db"})
		return
	}

	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))
	_, game, err := getGame(db, slug)
	if err != nil {
		log.Errorw("could not get game", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	Renderer.Text(w, http.StatusOK, game.Board().String())
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	Renderer.JSON(w, http.StatusOK, map[string]string{
		"healthy": "true",
		"version": libgo.Version,
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	Renderer.JSON(w, http.StatusNotFound, map[string]string{
		"error": "404: This page could not be found",
	})
}
