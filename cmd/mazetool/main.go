// mazetool is a CLI utility for inspecting, solving and generating maze maps.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/mazewalk/internal/config"
	"github.com/Faultbox/mazewalk/internal/engine/model"
	"github.com/Faultbox/mazewalk/internal/game/world"
	"github.com/Faultbox/mazewalk/internal/mazegen"
	"github.com/Faultbox/mazewalk/pkg/formats"
)

// ErrUnsolvable is returned by check when the goal cannot be reached.
var ErrUnsolvable = world.ErrUnreachable

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "render", "show":
		err = cmdRender(os.Stdout, args)
	case "check":
		err = cmdCheck(os.Stdout, args)
	case "model":
		err = cmdModel(os.Stdout, args)
	case "config":
		err = cmdConfig(os.Stdout, args)
	case "generate", "gen":
		err = cmdGenerate(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mazetool - maze map and model utility

Usage:
  mazetool <command> [options]

Commands:
  info <map.txt>                   Show map size and cell counts
  render [-path] <map.txt>         Print the map, optionally with the shortest path
  check <map.txt>                  Verify start and goal exist and are connected
  model [-stride N] <model.txt>    Show vertex count of a model file
  config [-o path | -user]         Print or write the default configuration
  generate [-cols N] [-rows N] [-o path]
                                   Generate a random maze map

Examples:
  mazetool info scenes/map1.txt
  mazetool render -path scenes/map1.txt
  mazetool model -stride 3 models/skybox.txt
  mazetool config -o config.yaml
  mazetool generate -cols 8 -rows 8 -o scenes/map2.txt`)
}

// mazeGrid adapts a parsed maze to the pathfinder.
type mazeGrid struct {
	maze *formats.Maze
}

func (g mazeGrid) Size() (int, int) {
	return g.maze.Width, g.maze.Height
}

func (g mazeGrid) Walkable(col, row int) bool {
	return g.maze.Cell(col, row) != formats.CellWall
}

// solve returns the shortest path between the last start and goal cells.
func solve(maze *formats.Maze) ([][2]int, error) {
	starts := maze.Find(formats.CellStart)
	goals := maze.Find(formats.CellGoal)
	if len(starts) == 0 {
		return nil, world.ErrNoStart
	}
	if len(goals) == 0 {
		return nil, world.ErrNoGoal
	}

	s, g := starts[len(starts)-1], goals[len(goals)-1]
	path := world.NewPathFinder(mazeGrid{maze}).FindPath(s[0], s[1], g[0], g[1])
	if path == nil {
		return nil, ErrUnsolvable
	}
	return path, nil
}

func loadMaze(fs *flag.FlagSet, usage string) (*formats.Maze, error) {
	if fs.NArg() < 1 {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return formats.ParseMazeFile(fs.Arg(0))
}

func cmdInfo(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	maze, err := loadMaze(fs, "mazetool info <map.txt>")
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Map:    %s\n", fs.Arg(0))
	fmt.Fprintf(w, "Size:   %dx%d\n", maze.Width, maze.Height)
	fmt.Fprintf(w, "Walls:  %d\n", maze.Count(formats.CellWall))
	fmt.Fprintf(w, "Open:   %d\n", maze.Count(formats.CellOpen))
	fmt.Fprintf(w, "Starts: %d\n", maze.Count(formats.CellStart))
	fmt.Fprintf(w, "Goals:  %d\n", maze.Count(formats.CellGoal))

	if path, err := solve(maze); err == nil {
		fmt.Fprintf(w, "Solution: %d steps\n", len(path)-1)
	} else {
		fmt.Fprintf(w, "Solution: none (%v)\n", err)
	}
	return nil
}

func cmdRender(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	showPath := fs.Bool("path", false, "Overlay the shortest path with '*'")
	if err := fs.Parse(args); err != nil {
		return err
	}
	maze, err := loadMaze(fs, "mazetool render [-path] <map.txt>")
	if err != nil {
		return err
	}

	cells := make([]byte, len(maze.Cells))
	copy(cells, maze.Cells)

	if *showPath {
		path, err := solve(maze)
		if err != nil {
			return err
		}
		for _, p := range path {
			i := p[1]*maze.Width + p[0]
			if cells[i] == formats.CellOpen {
				cells[i] = '*'
			}
		}
	}

	for row := 0; row < maze.Height; row++ {
		fmt.Fprintf(w, "%s\n", cells[row*maze.Width:(row+1)*maze.Width])
	}
	return nil
}

func cmdCheck(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	maze, err := loadMaze(fs, "mazetool check <map.txt>")
	if err != nil {
		return err
	}

	path, err := solve(maze)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "OK: goal reachable in %d steps\n", len(path)-1)
	return nil
}

func cmdModel(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("model", flag.ContinueOnError)
	stride := fs.Int("stride", model.DefaultStride, "Floats per vertex")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: mazetool model [-stride N] <model.txt>")
	}

	store := model.NewStore(*stride)
	idx, err := store.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	m, _ := store.Model(idx)

	fmt.Fprintf(w, "Model:    %s\n", m.Name)
	fmt.Fprintf(w, "Stride:   %d\n", store.Stride())
	fmt.Fprintf(w, "Floats:   %d\n", len(m.Data))
	fmt.Fprintf(w, "Vertices: %d\n", m.Count)
	fmt.Fprintf(w, "Triangles: %d\n", m.Count/3)
	return nil
}

func cmdConfig(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	out := fs.String("o", "", "Write to this path instead of stdout")
	user := fs.Bool("user", false, "Write to the user config directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	switch {
	case *user:
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", path)
	case *out != "":
		if err := cfg.SaveTo(*out); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", *out)
	default:
		return cfg.Encode(w)
	}
	return nil
}

func cmdGenerate(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cols := fs.Int("cols", 8, "Maze width in cells")
	rows := fs.Int("rows", 8, "Maze height in cells")
	out := fs.String("o", "", "Write to this path instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *cols < 1 || *rows < 1 {
		return fmt.Errorf("invalid maze size %dx%d", *cols, *rows)
	}

	maze, err := mazegen.Generate(*cols, *rows)
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = io.WriteString(w, maze.String())
		return err
	}
	if err := os.WriteFile(*out, []byte(maze.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	fmt.Fprintf(w, "Wrote %s (%dx%d)\n", *out, maze.Width, maze.Height)
	return nil
}
