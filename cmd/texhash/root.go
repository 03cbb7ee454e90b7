package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tamirms/texhash"
	"github.com/tamirms/texhash/internal/config"
	"github.com/tamirms/texhash/internal/logger"
)

var (
	version = "dev"

	cfgFile string
	v       = viper.New()
	cfg     config.Config
	log     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "texhash",
	Short: "Content checksums for texture data",
	Long: `texhash fingerprints texture memory the way a hi-res texture replacement
cache keys it: a fast rotate-and-add checksum or a strong mixing hash over
the texel rows, combined with the palette checksum for color-indexed data.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		if cfg, err = config.Load(v, cfgFile); err != nil {
			return err
		}
		if log, err = logger.New(logger.Config{Debug: cfg.Debug, Format: cfg.LogFormat}); err != nil {
			return err
		}
		zap.ReplaceGlobals(log)
		log.Debug("configuration loaded",
			zap.String("config_file", v.ConfigFileUsed()),
			zap.String("engine", cfg.Engine),
			zap.String("algorithm", cfg.Algorithm),
			zap.Int("workers", cfg.Workers),
		)
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = log.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the texhash version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	return fmt.Sprintf("texhash %s (%s/%s, %s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./texhash.yaml, then $HOME/.config/texhash/texhash.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-format", "human", "log format: human or json")
	flags.String("engine", "strong", "checksum engine: fast or strong")
	flags.String("algorithm", "xxh3", "strong engine mixing hash: xxh3, xxh64 or murmur3")
	flags.Int("workers", 0, "worker threads (0 = hardware concurrency)")
	flags.Int("max-width", 1024, "largest texture width the buffer pool holds")
	flags.Int("max-height", 1024, "largest texture height the buffer pool holds")

	for key, name := range map[string]string{
		"debug":      "debug",
		"log_format": "log-format",
		"engine":     "engine",
		"algorithm":  "algorithm",
		"workers":    "workers",
		"max_width":  "max-width",
		"max_height": "max-height",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.SetVersionTemplate(versionString())
	rootCmd.AddCommand(versionCmd)
}

// session is the hashing state shared by the subcommands.
type session struct {
	pool   *texhash.Pool
	hasher *texhash.Hasher
	engine texhash.Engine
	algo   texhash.HashAlgorithm
}

func newSession() (*session, error) {
	engine, err := texhash.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	algo, err := texhash.ParseHashAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	opts := []texhash.PoolOption{texhash.WithPoolLogger(log)}
	if cfg.Workers > 0 {
		opts = append(opts, texhash.WithProcessors(cfg.Workers))
	}
	pool := texhash.NewPool(opts...)
	if err := pool.Init(cfg.MaxWidth, cfg.MaxHeight); err != nil {
		return nil, fmt.Errorf("init buffer pool: %w", err)
	}

	log.Debug("session ready",
		zap.Stringer("engine", engine),
		zap.Stringer("algorithm", algo),
		zap.Int("processors", pool.Processors()),
		zap.Int("role_buffer_bytes", pool.SizeOf(0)),
	)
	return &session{
		pool:   pool,
		hasher: texhash.NewHasher(texhash.WithLogger(log), texhash.WithAlgorithm(algo), texhash.WithPool(pool, 0)),
		engine: engine,
		algo:   algo,
	}, nil
}

func (s *session) close() {
	if err := s.pool.Shutdown(); err != nil {
		log.Warn("buffer pool shutdown failed", zap.Error(err))
	}
}
