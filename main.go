package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/api"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/auth"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/config"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/db"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/kv"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/meet"
)

func printUsage() {
	fmt.Println("Usage:", os.Args[0], "[options]")
	flag.PrintDefaults()
}

func resetPassword(store kv.Store, password string) error {
	return auth.New(store, "").UpdatePassword(password)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error: Could not load configuration:", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Addr, "address to listen on")
	port := flag.Int("port", cfg.Port, "port to listen on")
	backend := flag.String("backend", cfg.Backend, "storage backend (bolt, sqlite or memory)")
	path := flag.String("path", cfg.Path, "path to database file")
	reset := flag.Bool("reset", false, "used to reset the admin password")
	password := flag.String("pass", "", "set admin password to given value (use with -reset)")

	flag.Usage = printUsage
	flag.Parse()

	cfg.Addr, cfg.Port, cfg.Backend, cfg.Path = *addr, *port, *backend, *path
	if err = cfg.Validate(); err != nil {
		fmt.Println("Error:", err)
		printUsage()
		os.Exit(1)
	}

	if *reset && *password == "" {
		fmt.Println("Error: -pass must be set if using -reset")
		printUsage()
		return
	}

	if !*reset && *password != "" {
		fmt.Println("Error: -reset must be used if using -pass")
		printUsage()
		return
	}

	store, err := kv.Open(cfg.Backend, cfg.Path)
	if err != nil {
		fmt.Println("Error: Could not open database", cfg.Path, ":", err)
		os.Exit(1)
	}
	defer store.Close()

	if *reset {
		if err = resetPassword(store, *password); err != nil {
			fmt.Println("Error: Could not reset password:", err)
			return
		}

		fmt.Println("Password reset successfully")
		return
	}

	d := db.New(store)
	if _, err = d.Load(); err != nil {
		fmt.Println("Error: Could not load document:", err)
		return
	}

	r := api.NewRouter(d, meet.NewService(d), auth.New(store, cfg.AdminPassword), api.NewMemorySessionStore(cfg.SessionDuration))

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		fmt.Println("Listening on", cfg.ListenAddr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Println("Error serving on", cfg.ListenAddr(), ":", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		fmt.Println("Error shutting down:", err)
	}
}
