// clinicctl is the command shell standing in for the UI tree: it builds the
// store once, hydrates it from disk, and exposes the screens as subcommands.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"dentalcenter.org/internal/auth"
	"dentalcenter.org/internal/obs"
	"dentalcenter.org/internal/storage"
	"dentalcenter.org/internal/store"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	if len(os.Args) < 2 {
		usage()
	}

	dbPath := os.Getenv("DENTAL_DB_PATH")
	if dbPath == "" {
		dbPath = "dental-center.db"
	}
	medium, err := storage.OpenLevelDB(dbPath)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer medium.Close()

	st := store.New(medium)
	ctx := context.Background()
	st.Hydrate(ctx)
	if cur := st.State().CurrentUser; cur != nil {
		ctx = auth.ContextWithUser(ctx, cur.ID, cur.Role)
	}

	a := &app{ctx: ctx, store: st, medium: medium}

	switch os.Args[1] {
	case "login":
		a.login(os.Args[2:])
	case "logout":
		a.logout()
	case "whoami":
		a.whoami()
	case "patients":
		a.patients(os.Args[2:])
	case "appointments":
		a.appointments(os.Args[2:])
	case "dashboard":
		a.dashboard()
	case "calendar":
		a.calendar(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s <command> [flags]

commands:
  login -email <email> -password <password>
  logout
  whoami
  patients list | add | edit | rm
  appointments list | add | edit | rm
  dashboard
  calendar [-month YYYY-MM] [-day N]
`, os.Args[0])
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
