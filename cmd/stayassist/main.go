// Command stayassist runs the booking assistant core with an
// operational HTTP listener and a line-based console for driving
// conversations locally. The production conversational gateway is a
// separate deployment that speaks the same turn contract.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/stayassist/concierge/internal/booking"
	"github.com/stayassist/concierge/internal/config"
	"github.com/stayassist/concierge/internal/dialogue"
	"github.com/stayassist/concierge/internal/httpapi"
	"github.com/stayassist/concierge/internal/observability"
	"github.com/stayassist/concierge/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	store, err := booking.NewStore(ctx, cfg.DatabaseURL, cfg.BookingsFile)
	if err != nil {
		log.Fatalf("booking store init failed: %v", err)
	}
	defer store.Close()

	switch {
	case cfg.DatabaseURL != "":
		log.Printf("booking store: postgres")
	case cfg.BookingsFile != "":
		log.Printf("booking store: file (%s)", cfg.BookingsFile)
	default:
		log.Printf("booking store: in-memory")
	}

	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	if mirror := session.NewMirror(ctx, cfg.RedisAddr, cfg.RedisPassword); mirror != nil {
		sessions.SetMirror(mirror)
		defer mirror.Close()
		log.Printf("session mirror: redis (%s)", cfg.RedisAddr)
	}
	sessions.SetExpireHook(func(_ *session.Session) {
		metrics.SetActiveSessions(sessions.ActiveCount())
	})

	workflow := booking.NewWorkflow(store)
	engine := dialogue.NewEngine(sessions, workflow, metrics)

	api := httpapi.New(cfg, sessions, store, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	sessions.StartJanitor(runCtx, cfg.SessionJanitorInterval)

	go func() {
		log.Printf("ops server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		runConsole(runCtx, engine, workflow, sessions, metrics)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Printf("shutdown signal received")
	case <-consoleDone:
		log.Printf("console closed")
	}

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}

// runConsole reads utterances from stdin, one turn per line. Slash
// commands drive the change and cancel workflows that the external
// gateway would normally trigger after intent classification.
func runConsole(ctx context.Context, engine *dialogue.Engine, workflow *booking.Workflow, sessions *session.Manager, metrics *observability.Metrics) {
	fmt.Println("StayAssist console. Type to talk; /help for commands.")

	var sessionID string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if line == "/quit" || line == "/exit" {
				return
			}
			runCommand(ctx, line, workflow, sessions, sessionID, metrics)
			continue
		}

		resp, err := engine.HandleTurn(ctx, dialogue.TurnRequest{
			SessionID: sessionID,
			Utterance: line,
		})
		if err != nil {
			log.Printf("turn error: %v", err)
			continue
		}
		sessionID = resp.SessionID
		for _, out := range resp.Lines {
			fmt.Println(out)
		}
		if resp.Widget != nil {
			fmt.Printf("[calendar widget: min %s, arrival %q, departure %q]\n",
				resp.Widget.MinDate, resp.Widget.ArrivalDate, resp.Widget.DepartureDate)
		}
	}
}

func runCommand(ctx context.Context, line string, workflow *booking.Workflow, sessions *session.Manager, sessionID string, metrics *observability.Metrics) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	emit := func(lines []string) {
		for _, out := range lines {
			fmt.Println(out)
		}
	}

	switch cmd {
	case "/help":
		fmt.Println("/cancel NUMBER")
		fmt.Println("/change-room NUMBER EMAIL ROOM_TYPE")
		fmt.Println("/change-guests NUMBER EMAIL GUESTS")
		fmt.Println("/change-dates NUMBER EMAIL ARRIVAL DEPARTURE")
		fmt.Println("/quit")

	case "/cancel":
		if len(args) != 1 {
			fmt.Println("usage: /cancel NUMBER")
			return
		}
		cachedRef := ""
		if sessionID != "" {
			if sess, err := sessions.Get(sessionID); err == nil {
				cachedRef = sess.BookingRef
			}
		}
		lines, ok, err := workflow.Cancel(ctx, args[0], cachedRef)
		if err != nil {
			log.Printf("cancel error: %v", err)
			return
		}
		if ok {
			metrics.BookingCancelled()
		}
		emit(lines)

	case "/change-room":
		if len(args) != 3 {
			fmt.Println("usage: /change-room NUMBER EMAIL ROOM_TYPE")
			return
		}
		rec, lines, ok, err := workflow.VerifyForChange(ctx, args[0], args[1], booking.ChangeRoom)
		emit(lines)
		if err != nil || !ok {
			logErr(err)
			return
		}
		_, lines, ok, err = workflow.UpdateRoom(ctx, rec.Reference, args[2])
		if err != nil {
			log.Printf("change room error: %v", err)
			return
		}
		if ok {
			metrics.BookingChanged()
		}
		emit(lines)

	case "/change-guests":
		if len(args) != 3 {
			fmt.Println("usage: /change-guests NUMBER EMAIL GUESTS")
			return
		}
		rec, lines, ok, err := workflow.VerifyForChange(ctx, args[0], args[1], booking.ChangeGuests)
		emit(lines)
		if err != nil || !ok {
			logErr(err)
			return
		}
		_, lines, ok, err = workflow.UpdateGuests(ctx, rec.Reference, args[2])
		if err != nil {
			log.Printf("change guests error: %v", err)
			return
		}
		if ok {
			metrics.BookingChanged()
		}
		emit(lines)

	case "/change-dates":
		if len(args) != 4 {
			fmt.Println("usage: /change-dates NUMBER EMAIL ARRIVAL DEPARTURE")
			return
		}
		rec, lines, ok, err := workflow.VerifyForChange(ctx, args[0], args[1], booking.ChangeDates)
		emit(lines)
		if err != nil || !ok {
			logErr(err)
			return
		}
		_, lines, ok, err = workflow.UpdateDates(ctx, rec.Reference, args[2], args[3])
		if err != nil {
			log.Printf("change dates error: %v", err)
			return
		}
		if ok {
			metrics.BookingChanged()
		}
		emit(lines)

	default:
		fmt.Printf("unknown command %s; /help lists commands\n", cmd)
	}
}

func logErr(err error) {
	if err != nil {
		log.Printf("workflow error: %v", err)
	}
}
