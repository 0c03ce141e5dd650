package main

import (
	"fmt"
	"os"
	"runtime"

	"GopherView/internal/config"
	"GopherView/internal/engine"
	"GopherView/internal/logger"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

type RunCmd struct {
	Config   string `help:"JSON configuration file." type:"existingfile" short:"c"`
	Width    int32  `help:"Window width, overrides the configuration."`
	Height   int32  `help:"Window height, overrides the configuration."`
	Vertex   string `help:"Vertex shader source file." type:"existingfile"`
	Fragment string `help:"Fragment shader source file." type:"existingfile"`
	Seed     *int64 `help:"Seed for the generated scene."`
}

type ConfigCmd struct {
	Out string `help:"Write to this file instead of standard output." short:"o" type:"path"`
}

type cli struct {
	Debug bool `help:"Enable debug logging."`

	Run    RunCmd    `cmd:"" default:"withargs" help:"Open the viewer."`
	Config ConfigCmd `cmd:"" help:"Write the default configuration."`
}

// GLFW must run on the main thread.
func init() {
	runtime.LockOSThread()
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	var CLI cli
	ctx := kong.Parse(&CLI,
		kong.Name("viewer"),
		kong.Description("a first-person 3D scene viewer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	logger.InitWithLevel(CLI.Debug)
	defer logger.Sync()

	var err error
	switch ctx.Command() {
	case "config":
		err = CLI.Config.write()
	default:
		err = CLI.Run.run()
	}
	if err != nil {
		logger.Log.Error("Viewer exited with an error", zap.Error(err))
		logger.Sync()
		writeError(err)
	}
}

func (c *ConfigCmd) write() error {
	if c.Out == "" {
		return config.Default().Write(os.Stdout)
	}
	if err := config.Default().Save(c.Out); err != nil {
		return fmt.Errorf("could not write config %s: %w", c.Out, err)
	}
	logger.Log.Info("Wrote default configuration", zap.String("path", c.Out))
	return nil
}

func (r *RunCmd) run() error {
	cfg, err := r.resolve()
	if err != nil {
		return err
	}
	return engine.NewViewer(cfg).Run()
}

// resolve loads the configuration file, if any, and applies flag overrides.
func (r *RunCmd) resolve() (config.Config, error) {
	cfg := config.Default()
	if r.Config != "" {
		loaded, err := config.Load(r.Config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		logger.Log.Info("Loaded configuration", zap.String("path", r.Config))
	}

	if r.Width > 0 {
		cfg.Window.Width = r.Width
	}
	if r.Height > 0 {
		cfg.Window.Height = r.Height
	}
	if r.Vertex != "" {
		cfg.Shaders.VertexPath = r.Vertex
	}
	if r.Fragment != "" {
		cfg.Shaders.FragmentPath = r.Fragment
	}
	if r.Seed != nil {
		cfg.Scene.Seed = *r.Seed
	}
	return cfg, cfg.Validate()
}
