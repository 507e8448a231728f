package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesynth/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [map]",
	Short: "Start the tilesynth SSH server",
	Long: `Start an SSH server that shows every connecting user a live generation.

With a map argument sessions go straight to that map. Without one users
pick from the sample maps and the maps under training.dir.

Each session gets its own seed. Finished runs are recorded in the
history database shared by all sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tilesynth/host_key

Examples:
  tilesynth serve                           # Listen on :23235 with the map picker
  tilesynth serve dungeon --ssh :2222       # Serve the dungeon sample on port 2222
  tilesynth serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	if flagSSHAddr != "" {
		cfg.Serve.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Serve.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Serve.IdleTimeoutMinutes = flagIdleTimeout
	}
	validate(cfg)

	logger := newLogger(cfg).WithPrefix("tilesynth-ssh")

	var entries []tui.Entry
	if len(args) > 0 {
		m, model := trainMap(cfg, args)
		entries = []tui.Entry{{Map: m, Model: model}}
	} else {
		entries = catalog(cfg.Training.Dir, logger)
	}

	srvCfg := tui.SSHServerConfig{
		Address:     cfg.Serve.Address,
		HostKeyPath: cfg.Serve.HostKey,
		DBPath:      cfg.Storage.DB,
		IdleTimeout: cfg.Serve.IdleTimeout(),
		Maps:        entries,
		Watch:       watchOptions(cfg),
		Logger:      logger,
	}
	if srvCfg.IdleTimeout <= 0 {
		srvCfg.IdleTimeout = 30 * time.Minute
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting tilesynth SSH server on %s (%d maps)\n", server.Addr(), len(entries))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatalf("server: %v", err)
	}
}
