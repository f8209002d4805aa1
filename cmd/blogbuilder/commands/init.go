package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for the generated config file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	// If the user specified an output directory, place the config there as "blog.yaml".
	cfgPath := root.Config
	if i.Output != "" {
		cfgPath = filepath.Join(i.Output, "blog.yaml")
	}

	fmt.Printf("Writing starter configuration to %s\n", cfgPath)
	if err := config.Init(cfgPath, i.Force); err != nil {
		return err
	}
	fmt.Println("Configuration written. Adjust the site and deploy sections, then run 'blogbuilder develop'.")
	return nil
}
