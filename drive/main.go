package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"mpc-drive-core/utils"
)

func main() {
	var (
		addr     = flag.String("addr", "", "listen address (overrides config)")
		cfgPath  = flag.String("config", "", "optional JSON config file")
		logLevel = flag.String("log", "info", "trace|debug|info|warn|error|critical")
		canIface = flag.String("can-iface", "", "SocketCAN interface for the actuation mirror (disabled if empty)")
		canID    = flag.Uint("can-id", 0x101, "CAN ID for mirrored actuation frames")
	)
	flag.Parse()

	log, err := utils.NewFileLogger("mpc_drive.log", utils.ParseLevel(*logLevel), true)
	if err != nil {
		_, _ = os.Stderr.WriteString("ERROR: cannot open mpc_drive.log: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Close()

	cfg := DefaultConfig()
	if *cfgPath != "" {
		cfg, err = LoadConfig(*cfgPath)
		if err != nil {
			log.Critical("Config failed: %v", err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mirror *utils.ActuationMirror
	if *canIface != "" {
		mirror, err = utils.NewActuationMirror(ctx, *canIface, uint32(*canID))
		if err != nil {
			log.Critical("CAN mirror failed: %v", err)
			os.Exit(1)
		}
		defer mirror.Close()
		log.Info("CAN mirror active: iface=%s id=0x%X", *canIface, uint32(*canID))
	}

	srv := NewServer(cfg, log, mirror)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Critical("Run failed: %v", err)
		os.Exit(1)
	}
}
