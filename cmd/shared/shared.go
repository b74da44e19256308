// Package shared provides the connection flags and config assembly common to
// the run and shell commands.
package shared

import (
	"fmt"
	"os"
	"time"

	"github.com/zlyZwierz/librouteros/pkg/config"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const categoryConnection = "connection"

// HostFlag is the name of the flag specifying the router host.
const HostFlag = "host"

// PortFlag is the name of the flag specifying the API port.
const PortFlag = "port"

// UserFlag is the name of the flag specifying the login user.
const UserFlag = "user"

// PasswordFlag is the name of the flag specifying the login password. When
// omitted, the password is prompted for without echo.
const PasswordFlag = "password"

// TLSFlag is the name of the flag enabling API-over-TLS.
const TLSFlag = "tls"

// InsecureFlag is the name of the flag disabling TLS certificate verification.
const InsecureFlag = "insecure"

// TimeoutFlag is the name of the flag specifying the read timeout.
const TimeoutFlag = "timeout"

// VerboseFlag is the name of the flag enabling verbose logging.
const VerboseFlag = "verbose"

// GetFlags returns the connection flags shared by run and shell.
func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     HostFlag,
			Usage:    "Router host (name or IP)",
			Category: categoryConnection,
			Required: true,
		},
		&cli.IntFlag{
			Name:     PortFlag,
			Aliases:  []string{"p"},
			Usage:    "API port (default: 8728, or 8729 with --tls)",
			Category: categoryConnection,
		},
		&cli.StringFlag{
			Name:     UserFlag,
			Aliases:  []string{"u"},
			Usage:    "Login user",
			Category: categoryConnection,
			Value:    "admin",
		},
		&cli.StringFlag{
			Name:     PasswordFlag,
			Usage:    "Login password (prompted when omitted)",
			Category: categoryConnection,
		},
		&cli.BoolFlag{
			Name:     TLSFlag,
			Usage:    "Connect with TLS",
			Category: categoryConnection,
		},
		&cli.BoolFlag{
			Name:     InsecureFlag,
			Usage:    "Skip TLS certificate verification (requires --tls)",
			Category: categoryConnection,
		},
		&cli.DurationFlag{
			Name:     TimeoutFlag,
			Usage:    "Read timeout for API operations",
			Category: categoryConnection,
			Value:    10 * time.Second,
		},
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose logging",
			Category: categoryConnection,
		},
	}
}

// GetConfig assembles a config from the parsed flags, filling in the default
// port and prompting for the password when it was not given.
func GetConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := &config.Config{
		Host:     cmd.String(HostFlag),
		Port:     int(cmd.Int(PortFlag)),
		Username: cmd.String(UserFlag),
		Password: cmd.String(PasswordFlag),
		TLS:      cmd.Bool(TLSFlag),
		Insecure: cmd.Bool(InsecureFlag),
		Timeout:  cmd.Duration(TimeoutFlag),
		Verbose:  cmd.Bool(VerboseFlag),
	}

	if cfg.Port == 0 {
		cfg.Port = config.DefaultPort
		if cfg.TLS {
			cfg.Port = config.DefaultTLSPort
		}
	}

	if !cmd.IsSet(PasswordFlag) {
		password, err := promptPassword(cfg.Username)
		if err != nil {
			return nil, err
		}
		cfg.Password = password
	}

	return cfg, nil
}

func promptPassword(user string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", user)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("term.ReadPassword(): %w", err)
	}

	return string(password), nil
}
