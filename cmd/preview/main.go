// Command preview sweeps launch angles through the trajectory simulator for a
// level and prints the predicted contacts, without opening a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/ecs/entity"
	"github.com/milk9111/pegshot/ecs/system"
	"github.com/milk9111/pegshot/prefabs"
	"github.com/milk9111/pegshot/trajectory"
)

func main() {
	levelName := flag.String("level", "1", "level name in prefabs/")
	seed := flag.Int64("seed", 1, "peg layout seed")
	angles := flag.Int("angles", 9, "number of launch angles between -75 and 75 degrees from straight down")
	steps := flag.Int("steps", 0, "override trajectory max_steps")
	collisions := flag.Int("collisions", 0, "override trajectory max_collisions")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}
	level, err := prefabs.LoadLevelSpec(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	if *steps > 0 {
		spec.Trajectory.MaxSteps = *steps
	}
	if *collisions > 0 {
		spec.Trajectory.MaxCollisions = *collisions
	}

	mirror, err := trajectory.NewWorld(spec.Physics.TrajectoryConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer mirror.Close()

	ballCollider, ballMass, err := entity.BallTemplate()
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	if err := entity.BuildArena(w, spec, level, *seed); err != nil {
		log.Fatal(err)
	}
	ts := system.NewTrajectorySystem(mirror, system.TrajectoryBall{Collider: ballCollider, Mass: ballMass},
		spec.Trajectory.MaxCollisions, spec.Trajectory.MaxSteps)
	w.AddSystem(ts)

	launcherEntity, ok := ecs.First(w, component.LauncherComponent.Kind())
	if !ok {
		log.Fatal("preview: level has no launcher")
	}
	launcher, _ := ecs.Get(w, launcherEntity, component.LauncherComponent.Kind())
	preview, _ := ecs.Get(w, launcherEntity, component.TrajectoryPreviewComponent.Kind())

	fmt.Printf("level %q seed %d, max steps %d, max collisions %d\n", level.Name, *seed, spec.Trajectory.MaxSteps, spec.Trajectory.MaxCollisions)
	out := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(out, "angle\tsteps\tcontacts\ttime")
	for i := 0; i < *angles; i++ {
		deg := -75.0
		if *angles > 1 {
			deg += 150 * float64(i) / float64(*angles-1)
		}
		rad := deg * math.Pi / 180
		launcher.Direction = cp.Vector{X: math.Sin(rad), Y: math.Cos(rad)}

		start := time.Now()
		w.Update()
		elapsed := time.Since(start)

		fmt.Fprintf(out, "%.1f\t%d\t%s\t%v\n", deg, len(preview.Positions), formatContacts(preview.Contacts), elapsed)
	}
	_ = out.Flush()
	fmt.Printf("%d colliders mirrored\n", mirror.Len())
}

func formatContacts(contacts []cp.Vector) string {
	if len(contacts) == 0 {
		return "-"
	}
	s := ""
	for i, c := range contacts {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("(%.0f,%.0f)", c.X, c.Y)
	}
	return s
}
