// pduheat - live terminal heat map of outlet power on a running
// simulator. Polls the management API over HTTP Basic and redraws a
// 24x2 grid of outlet tiles coloured by power draw. Purely a client;
// it can point at any reachable unit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerrad567/pdusim/internal/heatmap"
)

const outletCount = 48

// clearScreen homes the cursor and wipes the terminal before each frame.
const clearScreen = "\x1b[H\x1b[2J"

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8000", "management API root")
	pduID := flag.String("pdu-id", "2", "unit identifier")
	user := flag.String("user", "admin", "HTTP Basic username")
	password := flag.String("password", "123456789", "HTTP Basic password")
	refresh := flag.Float64("refresh", 1.0, "poll interval in seconds")
	autoscale := flag.Bool("autoscale", false, "fit the heat scale to observed powers")
	pmin := flag.Float64("pmin", 0, "fixed heat scale minimum in watts")
	pmax := flag.Float64("pmax", 300, "fixed heat scale maximum in watts")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *baseURL, *pduID, *user, *password, *refresh, *autoscale, *pmin, *pmax); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, baseURL, pduID, user, password string, refresh float64, autoscale bool, pmin, pmax float64) error {
	if refresh < 0.2 {
		refresh = 0.2
	}

	client := heatmap.NewClient(baseURL, pduID, user, password)
	renderer := heatmap.Renderer{
		PDUID: pduID,
		Scale: heatmap.Scale{MinW: pmin, MaxW: pmax, Auto: autoscale},
	}

	interval := time.Duration(refresh * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First frame immediately, then on the tick. A failed poll keeps
	// the loop alive; the unit may simply be restarting.
	for {
		data, err := client.Snapshot(ctx, outletCount)
		switch {
		case ctx.Err() != nil:
			fmt.Print("\n")
			return nil
		case err != nil:
			fmt.Printf("%supdate failed at %s: %v\n", clearScreen,
				time.Now().Format("15:04:05"), err)
		default:
			fmt.Print(clearScreen + renderer.Render(data, time.Now()))
		}

		select {
		case <-ctx.Done():
			fmt.Print("\n")
			return nil
		case <-ticker.C:
		}
	}
}
