package commands

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/qntx-braket/am"
	"github.com/teranos/qntx-braket/braket"
	"github.com/teranos/qntx-braket/db"
	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/logger"
	"github.com/teranos/qntx-braket/server"
	"github.com/teranos/qntx-braket/vizstore"
)

// ServeCmd runs the MCP server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Run the MCP server",
	Long: `Serve the quantum circuit tools over MCP.

The stdio transport (default) is what MCP clients launch as a subprocess;
logs and the banner go to stderr. The http transport serves streamable HTTP
on --addr. With --watch, edits to the loaded braket.toml hot-apply the
default device ARN and the Braket rate limit.`,
	RunE: runServe,
}

var (
	serveTransport string
	serveAddr      string
	serveWatch     bool
)

func init() {
	ServeCmd.Flags().StringVar(&serveTransport, "transport", "", "Transport: stdio or http (overrides server.transport)")
	ServeCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address for http (overrides server.address)")
	ServeCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload braket.toml on change")
}

func runServe(cmd *cobra.Command, args []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	log := logger.ComponentLogger("serve")

	loaded, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	cfg := *loaded
	if serveTransport != "" {
		cfg.Server.Transport = serveTransport
	}
	if serveAddr != "" {
		cfg.Server.Address = serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var opts []server.Option
	sinkOpts := []vizstore.Option{}
	if cfg.Visualization.Catalog {
		conn, err := openCatalog(cfg.GetCatalogPath(), log)
		if err != nil {
			log.Warnw("Visualization catalog disabled", logger.FieldError, err)
		} else {
			defer conn.Close()
			catalog := vizstore.NewCatalog(conn)
			sinkOpts = append(sinkOpts, vizstore.WithCatalog(catalog))
			opts = append(opts, server.WithCatalog(catalog))
		}
	}
	sink := vizstore.NewFileSink(cfg.GetWorkspaceDir(), sinkOpts...)

	var srv *server.Server
	factory := func(ctx context.Context) (server.Backend, error) {
		current := srv.Config()
		svc, err := braket.NewService(ctx, current.BraketOptions())
		if err != nil {
			return nil, err
		}
		if current.Braket.ValidateAccess {
			if err := svc.ValidateAccess(ctx); err != nil {
				log.Warnw("Braket access check failed; tools will report errors until credentials work",
					logger.FieldError, err)
			}
		}
		return svc, nil
	}
	srv = server.New(&cfg, factory, sink, opts...)

	configFile := am.ActiveConfigFile()
	if serveWatch {
		stop, err := watchConfig(srv, configFile, log)
		if err != nil {
			log.Warnw("Config watch disabled", logger.FieldError, err)
		} else {
			defer stop()
		}
	}

	printStartupBanner(cmd.ErrOrStderr(), &cfg, verbosity, configFile)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Server.Transport == am.TransportHTTP {
		return srv.ServeHTTP(ctx, cfg.Server.Address)
	}
	return srv.ServeStdio(ctx, os.Stdin, os.Stdout)
}

// openCatalog opens the migrated catalog database, creating its directory.
func openCatalog(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), am.DefaultDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	return db.OpenWithMigrations(path, log)
}

// watchConfig hot-applies edits of configFile to srv. The returned func
// stops the watcher.
func watchConfig(srv *server.Server, configFile string, log *zap.SugaredLogger) (func(), error) {
	if configFile == "" {
		return nil, errors.WithHint(errors.New("no braket.toml was loaded"), "run 'qntx-braket config init' to create one")
	}
	w, err := am.NewConfigWatcher(configFile, nil)
	if err != nil {
		return nil, err
	}
	w.OnReload(func(c *am.Config) error {
		srv.ApplyConfig(c)
		return nil
	})
	am.SetGlobalWatcher(w)
	w.Start()
	log.Infow("Watching config", logger.FieldPath, configFile)
	return func() {
		if err := w.Stop(); err != nil {
			log.Debugw("Config watcher stop failed", logger.FieldError, err)
		}
	}, nil
}
