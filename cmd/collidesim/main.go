// collidesim runs a scene headless and logs its collision events.
//
// Profiling:
// go build ./cmd/collidesim
// ./collidesim -ticks 100000 -profile cpu
// go tool pprof -http=":8000" ./collidesim cpu.pprof
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/prefabs"
	"github.com/milk9111/collide/scene"
	"github.com/pkg/profile"
)

func main() {
	sceneName := flag.String("scene", "arena.yaml", "scene file in prefabs/scenes/")
	ticks := flag.Int("ticks", 600, "number of ticks to simulate (0 runs until interrupted with -watch)")
	watch := flag.Bool("watch", false, "run in real time and reload scenes and scripts when they change on disk")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	verbose := flag.Bool("v", false, "log every collision event")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	var profileOpts []func(*profile.Profile)
	switch *profileMode {
	case "":
	case "cpu":
		profileOpts = append(profileOpts, profile.CPUProfile)
	case "mem":
		profileOpts = append(profileOpts, profile.MemProfileAllocs)
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	// load before profiling starts so a bad scene exits without a partial profile
	sim, err := load(*sceneName, logger)
	if err != nil {
		log.Fatal(err)
	}

	if profileOpts != nil {
		profileOpts = append(profileOpts, profile.ProfilePath("."), profile.NoShutdownHook)
		defer profile.Start(profileOpts...).Stop()
	}

	if !*watch {
		start := time.Now()
		run(sim, *ticks, *verbose, logger)
		w := sim.World()
		logger.Printf("scene %s: %d ticks in %s, %d entities alive, %d colliders", sim.Name, sim.Tick(), time.Since(start), w.EntityCount(), ecs.Count(w, component.ColliderComponent.Kind()))
		return
	}

	watcher, err := prefabs.NewWatcher("prefabs/scenes", "prefabs/scripts")
	if err != nil {
		logger.Printf("watch: %v", err)
		return
	}
	defer watcher.Close()

	step := time.Duration(sim.Movement.Timestep * float64(time.Second))
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for *ticks <= 0 || sim.Tick() < *ticks {
		select {
		case change, ok := <-watcher.Changes:
			if !ok {
				return
			}
			switch change.Kind {
			case prefabs.ChangeScript:
				logger.Printf("reload script %s", change.Path)
				sim.Scripts.Reload()
			case prefabs.ChangeScene:
				next, err := load(*sceneName, logger)
				if err != nil {
					logger.Printf("reload scene %s: %v", change.Path, err)
					continue
				}
				logger.Printf("reload scene %s", change.Path)
				sim = next
			}
		case err, ok := <-watcher.Errors:
			if ok {
				logger.Printf("watch: %v", err)
			}
		case <-ticker.C:
			run(sim, 1, *verbose, logger)
		}
	}
}

func load(name string, logger *log.Logger) (*scene.Scene, error) {
	spec, err := prefabs.LoadScene(name)
	if err != nil {
		return nil, err
	}
	sim, err := scene.FromSpec(spec, scene.Options{Logger: logger})
	if err != nil {
		return nil, err
	}
	// events are printed by run when -v is set
	sim.Collisions.Logger = nil
	return sim, nil
}

func run(sim *scene.Scene, ticks int, verbose bool, logger *log.Logger) {
	for i := 0; i < ticks; i++ {
		sim.Update()
		if !verbose {
			continue
		}
		for _, evt := range sim.Events() {
			logger.Printf("tick %d: %s %s <-> %s", sim.Tick(), evt.Kind, sim.NameOf(evt.A), sim.NameOf(evt.B))
		}
	}
}
