package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/esther-pixel31/swiftsend-go/googleauth"
)

func newLoginCommand(configPath *string) *cobra.Command {
	var (
		email     string
		password  string
		asAdmin   bool
		viaGoogle bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if viaGoogle {
				return googleLogin(cmd, a)
			}
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			login := a.manager.Login
			if asAdmin {
				login = a.manager.AdminLogin
			}
			result, err := login(ctx, email, password)
			if err != nil {
				return loginError(a)
			}

			if result.RequiresOTP {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in. Verify the emailed code with 'swiftsend verify-otp' to continue.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sessionEmail(a))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "Sign in against the admin endpoint")
	cmd.Flags().BoolVar(&viaGoogle, "google", false, "Sign in with Google")
	return cmd
}

func googleLogin(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	client, err := googleauth.New(ctx,
		a.cfg.GetGoogleClientID(),
		a.cfg.GetGoogleClientSecret(),
		a.cfg.GetGoogleRedirectURL(),
	)
	if err != nil {
		return err
	}

	flow, err := googleauth.NewFlow()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Open this URL in your browser and authorize SwiftSend:\n\n  %s\n\n", client.AuthURL(flow))
	fmt.Fprint(cmd.OutOrStdout(), "Paste the authorization code: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	code, err := reader.ReadString('\n')
	if err != nil {
		return errors.Wrap(err, "[googleLogin] read code")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("[googleLogin] empty authorization code")
	}

	tok, err := client.Exchange(ctx, flow, code)
	if err != nil {
		return err
	}
	credential, err := client.Credential(ctx, tok)
	if err != nil {
		return err
	}

	if _, err := a.manager.GoogleLogin(ctx, credential); err != nil {
		return loginError(a)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sessionEmail(a))
	return nil
}

func newRegisterCommand(configPath *string) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a SwiftSend account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.manager.Register(cmd.Context(), name, email, password); err != nil {
				return loginError(a)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Sign in with 'swiftsend login'.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newVerifyOTPCommand(configPath *string) *cobra.Command {
	var (
		email  string
		code   string
		resend bool
	)

	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Verify the emailed one-time passcode",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if email == "" {
				email = sessionEmail(a)
			}
			if email == "" {
				return errors.New("--email is required when no session is loaded")
			}

			if resend {
				if err := a.manager.ResendOTP(cmd.Context(), email); err != nil {
					return loginError(a)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "A new code is on its way.")
				return nil
			}

			if code == "" {
				return errors.New("--code is required")
			}
			if _, err := a.manager.VerifyOTP(cmd.Context(), email, code); err != nil {
				return loginError(a)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Verified. You are fully signed in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (defaults to the current session)")
	cmd.Flags().StringVar(&code, "code", "", "The emailed passcode")
	cmd.Flags().BoolVar(&resend, "resend", false, "Request a fresh passcode instead of verifying")
	return cmd
}

func newLogoutCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.manager.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			profile, err := a.api.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>  role=%s  otp_verified=%v\n",
				profile.Name, profile.Email, profile.Role, profile.OTPVerified)
			return nil
		},
	}
}

// loginError surfaces the session's recorded flow message, which carries the
// backend's msg field when there was one.
func loginError(a *app) error {
	current := a.manager.Current()
	if current.Err != nil {
		return errors.New(current.Err.Message)
	}
	return errors.New("request failed")
}

func sessionEmail(a *app) string {
	current := a.manager.Current()
	if current.User == nil {
		return ""
	}
	return current.User.Email
}
