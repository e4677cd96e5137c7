package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/cricklet/dobutsugo/internal/config"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/shards"
)

var upgrader = websocket.Upgrader{}

func wsHandler(cache *shards.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("upgrade")
			return
		}
		defer c.Close()

		s := newSession(cache, os.Stderr, func(bytes []byte) error {
			return c.WriteMessage(websocket.TextMessage, bytes)
		})

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Msg("websocket closed")
				break
			}
			s.handleMessageFromWeb(ctx, message)
		}
	}
}

func newRouter(cache *shards.Cache, staticDir string) *mux.Router {
	var index = func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	}

	router := mux.NewRouter()
	router.HandleFunc("/ws", wsHandler(cache))
	router.PathPrefix("/static").Handler(
		http.StripPrefix("/static", http.FileServer(http.Dir(staticDir))))
	router.PathPrefix("/{forest}/{sky}").HandlerFunc(index)
	router.HandleFunc("/", index)
	return router
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	cfg, _, err := config.Load("server", os.Args[1:])
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	SetupLogger(cfg.Debug(), os.Stderr)

	cache := shards.NewCache(shards.NewSource(cfg.TablebaseURL(), cfg.TablebaseDir()))
	_, err = cache.Boundaries(context.Background())
	if !IsNil(err) {
		log.Warn().Err(err).Msg("couldn't load shard boundaries; will retry on first search")
	}

	log.Info().Int("port", cfg.Port()).Str("tablebase", cache.Source().String()).Msg("serving")

	err = Wrap(http.ListenAndServe(fmt.Sprintf(":%v", cfg.Port()), newRouter(cache, cfg.StaticDir())))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
