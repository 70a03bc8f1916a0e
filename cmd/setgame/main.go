package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"setgame-server/internal/config"
	"setgame-server/internal/mux"
	"setgame-server/internal/rng"
	"setgame-server/pkg/display"
	"setgame-server/pkg/room"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the game version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the spectator listen address, overrides spectator.addr")
var seed = flag.Int64("seed", 0, "seed for a reproducible game, 0 uses crypto/rand")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	var gen rng.Generator = rng.Crypto{}
	if *seed != 0 {
		gen = rng.NewSeeded(*seed)
	}

	spectators := room.NewSpectators(cfg.Game.TableSize, logrus.StandardLogger())
	disp := display.Multi{
		display.NewLog(logrus.StandardLogger(), layout(cfg)),
		spectators,
	}

	dealer, err := newGame(cfg, gen, disp, logrus.StandardLogger())
	if err != nil {
		logrus.WithError(err).Fatal("could not create the game")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := startSpectatorServer(cfg, dealer, spectators)

	humans := make([]*room.Player, 0, cfg.Players.Human)
	for _, p := range dealer.Players() {
		logrus.WithFields(logrus.Fields{
			"player": p.ID,
			"name":   p.Name,
			"human":  p.Human,
		}).Info("player seated")

		if p.Human {
			humans = append(humans, p)
		}
	}

	restore := func() {}
	if len(humans) > 0 {
		for i, p := range humans {
			logrus.Infof("%s plays with %s", p.Name, strings.Join(strings.Split(keyMaps[i], ""), " "))
		}

		restore = newKeyboard(humans, cfg.Game.TableSize).listen(stop)
	}

	pitBoss := room.NewPitBoss(dealer)
	pitBoss.StartShift(ctx)
	results := pitBoss.Wait()
	restore()

	printResults(os.Stdout, dealer, results)

	if ctx.Err() == nil && cfg.Game.EndGamePause > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(cfg.Game.EndGamePause):
		}
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("could not shut down the spectator server")
		}
	}
}

// startSpectatorServer serves the spectator endpoints if an address is configured
func startSpectatorServer(cfg config.Config, dealer *room.Dealer, spectators *room.Spectators) *http.Server {
	listen := cfg.Spectator.Addr
	if *addr != "" {
		listen = *addr
	}

	if listen == "" {
		return nil
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         listen,
		Handler:      loggingHandler(cfg, c.Handler(mux.NewMux(Version, dealer, spectators))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("spectator server stopped")
		}
	}()

	return srv
}

func loggingHandler(cfg config.Config, next http.Handler) http.Handler {
	if cfg.Log.DisableAccessLogs {
		return next
	}

	var out io.Writer = os.Stdout
	if term.IsTerminal(int(os.Stdin.Fd())) {
		out = crlfWriter{w: os.Stdout}
	}

	return handlers.CombinedLoggingHandler(out, next)
}

func printResults(w io.Writer, dealer *room.Dealer, results *room.Results) {
	players := dealer.Players()
	sort.SliceStable(players, func(i, j int) bool {
		return results.Scores[players[i].ID] > results.Scores[players[j].ID]
	})

	nameOf := make(map[int]string, len(players))
	fmt.Fprintln(w, "final scores:")
	for _, p := range players {
		nameOf[p.ID] = p.Name
		fmt.Fprintf(w, "  %-12s %d\n", p.Name, results.Scores[p.ID])
	}

	names := make([]string, 0, len(results.Winners))
	for _, id := range results.Winners {
		names = append(names, nameOf[id])
	}

	if len(names) == 1 {
		fmt.Fprintf(w, "the winner is %s\n", names[0])
	} else {
		fmt.Fprintf(w, "it's a tie between %s\n", strings.Join(names, ", "))
	}
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
