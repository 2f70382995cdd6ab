package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"storefront/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// コマンド間で共有する状態
type cliState struct {
	verbose bool
	envFile string

	cfg    config.Config
	logger *zap.Logger
	app    *app
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Chocolate storefront cart client",
		Long: `storefront keeps a guest cart on this machine and moves it into your
account cart when you log in.

Run "storefront serve" for the local HTTP interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			st.close()
		},
	}

	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&st.envFile, "env-file", ".env", "Optional dotenv file")

	root.AddCommand(newServeCmd(st))
	root.AddCommand(newCartCmd(st))
	root.AddCommand(newLoginCmd(st))
	root.AddCommand(newVerifyOTPCmd(st))
	root.AddCommand(newLogoutCmd(st))
	return root
}

func (st *cliState) init(cmd *cobra.Command) error {
	//.envは無くてもよい
	if err := godotenv.Load(st.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", st.envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st.cfg = cfg

	zcfg := zap.NewProductionConfig()
	if cfg.IsDev() {
		zcfg = zap.NewDevelopmentConfig()
	}
	if st.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	st.logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	st.app, err = newApp(cmd.Context(), cfg, st.logger)
	if err != nil {
		_ = st.logger.Sync()
		return err
	}
	return nil
}

func (st *cliState) close() {
	if st.app != nil {
		if err := st.app.close(); err != nil {
			st.logger.Warn("close storage", zap.Error(err))
		}
		st.app = nil
	}
	if st.logger != nil {
		_ = st.logger.Sync()
	}
}

// RunEの最後で通知を出してから後片付けする。
// PersistentPostRunはRunEが失敗すると呼ばれないので、ここでも閉じる。
func (st *cliState) finish(w io.Writer, err error) error {
	if st.app != nil {
		printNotices(w, st.app.notices.Drain())
	}
	if err != nil {
		st.close()
	}
	return err
}
