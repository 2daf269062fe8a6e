package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"respite/internal/config"
	"respite/internal/engine"
	"respite/internal/history"
	"respite/internal/quote"
	"respite/internal/storage"
	"respite/internal/ui/dashboard"
	"respite/internal/ui/focus"
	"respite/internal/ui/form"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	hist, err := history.Open(filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		log.Fatal("Failed to open break history:", err)
	}
	defer hist.Close()

	clock := clockwork.NewRealClock()

	eng, err := engine.New(store, hist, clock)
	if err != nil {
		log.Fatal("Failed to load state:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// The evaluator runs regardless of which screen is open, so breaks
	// come due and expire while the user is in a form or the focus view.
	go eng.Run(ctx)

	quotes := quote.New(store, clock, cfg.QuoteURL)
	if sched, err := quotes.StartDailyRefresh(ctx); err != nil {
		log.Printf("quote refresh job: %v", err)
	} else {
		defer sched.Shutdown()
	}

	if err := runApp(cfg, store, hist, eng, quotes); err != nil {
		log.Fatal(err)
	}
}

func runApp(cfg *config.Config, store *storage.Store, hist *history.DB, eng *engine.Engine, quotes *quote.Service) error {
	// Check if this is first time setup
	if store.IsFirstTime() {
		fmt.Println("*** Welcome to Respite! ***")
		fmt.Println("Let's set up your profile...")

		profileModel, err := form.NewProfile(store, eng)
		if err != nil {
			return err
		}

		p := tea.NewProgram(profileModel, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		fmt.Println("[OK] Setup complete! Your breaks await.")
	}

	// Main app loop
	for {
		dashboardModel, err := dashboard.New(eng, hist, store, cfg, quotes)
		if err != nil {
			return err
		}

		p := tea.NewProgram(dashboardModel, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		dashboardModel = finalModel.(dashboard.Model)
		switch {
		case dashboardModel.ShouldQuit():
			fmt.Println(">>> See you at the next break!")
			return nil

		case dashboardModel.ShouldOpenForm():
			p := tea.NewProgram(form.New(eng), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}

		case dashboardModel.ShouldOpenFocus():
			p := tea.NewProgram(focus.New(eng), tea.WithAltScreen())
			finalFocus, err := p.Run()
			if err != nil {
				return err
			}
			if focusModel, ok := finalFocus.(focus.Model); ok && focusModel.ShouldQuit() {
				fmt.Println(">>> See you at the next break!")
				return nil
			}

		case dashboardModel.ShouldOpenSettings():
			profileModel, err := form.NewProfile(store, eng)
			if err != nil {
				return err
			}
			p := tea.NewProgram(profileModel, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
		}
	}
}
