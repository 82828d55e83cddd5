package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/taskimport"
	storageio "github.com/slok/nudge/internal/storage/io"
)

type TaskImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	path   string
	format string
}

// NewTaskImportCommand returns the task import command.
func NewTaskImportCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskImportCommand {
	c := &TaskImportCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("import", "Import tasks from a YAML file.")
	c.Cmd.Arg("file", "Tasks YAML file.").Required().StringVar(&c.path)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c TaskImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskImportCommand) Run(ctx context.Context) error {
	abs, err := filepath.Abs(c.path)
	if err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := taskimport.NewService(taskimport.ServiceConfig{
		Repository: repo,
		Loader:     storageio.NewTaskYAMLRepository(os.DirFS(filepath.Dir(abs))),
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	tasks, err := svc.Run(ctx, taskimport.Request{
		UserID: c.rootCmd.UserID,
		Path:   filepath.Base(abs),
	})
	if err != nil {
		return fmt.Errorf("could not import tasks: %w", err)
	}

	return c.rootCmd.printer(c.format).PrintTasks(tasks)
}
