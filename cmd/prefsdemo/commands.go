package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thejerf/suture/v4"

	"github.com/nikmy/gameprefs/internal/api"
	"github.com/nikmy/gameprefs/pkg/ecs"
	"github.com/nikmy/gameprefs/pkg/errors"
	"github.com/nikmy/gameprefs/pkg/prefs"
)

func newRunCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo loop, counting launches and serving the inspector",
		RunE:  c.run,
	}
	cmd.Flags().String("inspector-addr", "", "Inspector listen address")
	cmd.Flags().Duration("interval", 0, "Update interval")
	return cmd
}

func (c *cli) run(cmd *cobra.Command, _ []string) error {
	app, err := newDemoApp(c.cfg, c.log)
	if err != nil {
		return err
	}
	app.AddSystems(ecs.Startup, countLaunch(time.Now), ecs.Named("demo.count_launch"))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sup := suture.New("prefsdemo", suture.Spec{EventHook: eventHook(c.log.With("supervisor"))})
	sup.Add(&loopService{app: app, interval: c.cfg.Loop.Interval})
	if c.cfg.Inspector.Enabled {
		sup.Add(&httpService{
			srv: api.NewServer(c.cfg.Inspector, c.log, app),
			log: c.log,
		})
	}

	err = sup.Serve(ctx)
	if ctx.Err() != nil || errors.Is(err, suture.ErrTerminateSupervisorTree) {
		c.log.Infof("shutdown complete")
		return nil
	}
	return err
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings in the storage format",
		RunE:  c.show,
	}
}

func (c *cli) show(cmd *cobra.Command, _ []string) error {
	app, err := newDemoApp(c.cfg, c.log)
	if err != nil {
		return err
	}
	app.Update()

	reg, ok := prefs.RegistryOf(app.World())
	if !ok {
		return errors.Error("preferences registry is missing")
	}
	data, err := prefs.EncodeDocument(reg.Format(), reg.Snapshot(app.World()))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", reg.Storage().Location())
	_, err = out.Write(data)
	return err
}

func newPathCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the settings are stored",
		RunE:  c.path,
	}
}

func (c *cli) path(cmd *cobra.Command, _ []string) error {
	storage, err := c.resolveStorage()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), storage.Location())
	return nil
}

func newResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored settings, so the next run starts from defaults",
		RunE:  c.reset,
	}
}

func (c *cli) reset(cmd *cobra.Command, _ []string) error {
	storage, err := c.resolveStorage()
	if err != nil {
		return err
	}

	remover, ok := storage.(prefs.Remover)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "nothing to reset in %s\n", storage.Location())
		return nil
	}
	if err := remover.Remove(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", storage.Location())
	return nil
}

func (c *cli) resolveStorage() (prefs.Storage, error) {
	plugin, err := pluginFromConfig(c.cfg)
	if err != nil {
		return nil, err
	}
	return plugin.ResolveStorage()
}
