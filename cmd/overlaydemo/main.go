// Command overlaydemo drives the overlay engine with a scripted command
// sequence against an in-memory scene, then dumps the resulting scene graph.
// With -listen it instead serves the WebSocket bridge so external senders
// can issue commands.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/scene"
	"github.com/gogpu/overlay/transport"
)

func main() {
	var (
		listen  = flag.String("listen", "", "serve the WebSocket bridge on this address instead of running the script")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	overlay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	surf := scene.New()
	loop := overlay.NewLoop()
	defer loop.Stop()

	if *listen != "" {
		serve(*listen, surf, loop)
		return
	}

	eng := overlay.NewEngine(
		overlay.WithSurface(surf),
		overlay.WithScheduler(loop),
		overlay.WithEvents(func(event, group string) {
			log.Printf("event %s group=%q", event, group)
		}),
	)

	runScript(eng, loop)
	loop.Sync()

	dumpScene(surf)
}

func serve(addr string, surf *scene.Scene, loop *overlay.Loop) {
	bridge := transport.NewBridge(loop)
	eng := overlay.NewEngine(
		overlay.WithSurface(surf),
		overlay.WithScheduler(loop),
		overlay.WithEvents(bridge.Notify),
	)
	bridge.SetEngine(eng)

	http.Handle("/overlay", bridge)
	log.Printf("overlay bridge listening on ws://%s/overlay", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// runScript replays a short capture of a typical session: a HUD group with
// a live text model, a couple of loose shapes, and a freeze so the HUD
// survives its timeout.
func runScript(eng *overlay.Engine, loop *overlay.Loop) {
	const (
		red   = 0xFFFF0000
		green = 0xFF00FF00
		white = 0xFFFFFFFF
	)

	// All engine calls happen on the loop worker.
	send := func(id int64, command string, args ...any) {
		loop.Post(func() { eng.Enqueue(id, command, args...) })
	}

	// Named group with a model backing the template below.
	send(1, "overlay_set_group", "hud", map[string]any{
		"player": map[string]any{"name": "guest", "hp": 99},
	})
	send(2, "overlay_rect", red, 20, 20, 200, 60, 5000, 10)
	send(3, "overlay_text", "{self.player.name}: {self.player.hp} hp",
		white, 18, 30, 40, 5000, "", true, true)
	send(4, "overlay_freeze_group", "hud")

	// Loose primitives on a fresh group expire on their own.
	send(5, "overlay_set_group", "scratch", nil)
	send(6, "overlay_line", green, 30, 0, 100, 100, 200, 1500)
	send(7, "overlay_set_group_z", "scratch", 5)

	// Out-of-order delivery: the barrier at id 9 waits for id 8.
	send(9, "overlay_clear_group", "scratch")
	send(8, "overlay_rect", green, 300, 20, 40, 40, 1500, 10)

	// Let the short-lived groups expire.
	time.Sleep(2 * time.Second)
}

func dumpScene(surf *scene.Scene) {
	roots := surf.Roots()
	fmt.Printf("scene: %d item(s), %d root(s)\n", surf.Len(), len(roots))
	for _, it := range roots {
		dumpItem(surf, it, "  ")
	}
}

func dumpItem(surf *scene.Scene, it *scene.Item, indent string) {
	x, y := it.Pos()
	fmt.Printf("%s%s at (%.0f, %.0f) z=%d", indent, it.Kind(), x, y, it.Z())
	if it.Kind() == scene.KindText {
		fmt.Printf(" %q", it.Text())
	}
	fmt.Println()
	for _, child := range surf.Children(it) {
		if c, ok := child.(*scene.Item); ok {
			dumpItem(surf, c, indent+"  ")
		}
	}
}
