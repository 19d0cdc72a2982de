package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/esther-pixel31/swiftsend-go/api"
	"github.com/esther-pixel31/swiftsend-go/httpclient"
	"github.com/esther-pixel31/swiftsend-go/internal/config"
	"github.com/esther-pixel31/swiftsend-go/session"
	"github.com/esther-pixel31/swiftsend-go/session/filestore"
	"github.com/esther-pixel31/swiftsend-go/token"
)

const appName = "SwiftSend"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "swiftsend",
		Short:         "SwiftSend wallet client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			displayAppname(appName)
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ~/.swiftsend/config.yaml)")

	cmd.AddCommand(newLoginCommand(&configPath))
	cmd.AddCommand(newRegisterCommand(&configPath))
	cmd.AddCommand(newVerifyOTPCommand(&configPath))
	cmd.AddCommand(newLogoutCommand(&configPath))
	cmd.AddCommand(newWhoamiCommand(&configPath))
	cmd.AddCommand(newWalletCommand(&configPath))
	cmd.AddCommand(newTransferCommand(&configPath))
	cmd.AddCommand(newBeneficiariesCommand(&configPath))
	cmd.AddCommand(newFXCommand(&configPath))
	cmd.AddCommand(newHistoryCommand(&configPath))
	cmd.AddCommand(newKYCCommand(&configPath))
	cmd.AddCommand(newSupportCommand(&configPath))
	cmd.AddCommand(newAdminCommand(&configPath))
	return cmd
}

// app wires the SDK together for one CLI invocation: config, token store,
// HTTP client, API services and the session manager.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	store   session.TokenStore
	manager *session.Manager
	api     *api.Client
}

// lazySource defers bearer lookup until the manager exists; the HTTP client
// needs a TokenSource before the manager can be constructed on top of it.
type lazySource struct {
	manager *session.Manager
}

func (s *lazySource) AccessToken() string {
	if s.manager == nil {
		return ""
	}
	return s.manager.AccessToken()
}

func newApp(configPath string) (*app, error) {
	config.LoadDotEnv()

	cfg, err := config.New(configPath)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var store session.TokenStore
	if passphrase := cfg.GetTokenPassphrase(); passphrase != "" {
		store, err = filestore.NewEncrypted(cfg.GetTokenFile(), passphrase)
		if err != nil {
			return nil, err
		}
	} else {
		store = filestore.New(cfg.GetTokenFile())
	}

	source := &lazySource{}
	httpc, err := httpclient.New(cfg.GetAPIBaseURL(), source,
		httpclient.WithTimeout(cfg.GetRequestTimeout()),
		httpclient.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	apiClient, err := api.New(httpc)
	if err != nil {
		return nil, err
	}

	manager, err := session.NewManager(api.NewAuthenticator(apiClient), store)
	if err != nil {
		return nil, err
	}
	source.manager = manager

	a := &app{cfg: cfg, log: log, store: store, manager: manager, api: apiClient}
	a.hydrate()
	return a, nil
}

// hydrate restores a persisted token pair into the manager. Expiry is checked
// later by requireSession; a stale pair loads fine for logout.
func (a *app) hydrate() {
	access, refresh, err := a.store.Load()
	if err != nil || access == "" {
		return
	}
	a.manager.HydrateFromStorage(access, refresh)
}

// requireSession guards authenticated commands the way the route table guards
// screens: no token means login first, an expired one is cleared with the
// standard notice.
func (a *app) requireSession() error {
	access := a.manager.AccessToken()
	if access == "" {
		return errors.New("not logged in; run 'swiftsend login' first")
	}
	if token.IsExpired(access) {
		_ = a.manager.Logout()
		return errors.New(session.NoticeSessionExpired)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
