package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/paraglidehq/burstid"
	"github.com/paraglidehq/burstid/credential"
	"github.com/paraglidehq/burstid/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// Exit codes for failed conversions.
const (
	exitMalformed = 2 // too many symbols
	exitInvalid   = 3 // checksum mismatch, too few symbols or out of range
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "burstid:", err)
		os.Exit(1)
	}
}

type command struct {
	cfg  *config.Config
	log  *logrus.Logger
	json bool
}

// output is one line of --json output. Account is nil when the input did
// not decode.
type output struct {
	*burstid.Account
	Input     string `json:"input,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	c := &command{log: logrus.New()}
	c.log.SetOutput(stderr)

	return &cli.App{
		Name:      "burstid",
		Usage:     "Convert Burst account IDs to and from checksummed addresses",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "TOML config file",
			},
			&cli.StringFlag{
				Name:    "prefix",
				EnvVars: []string{"BURSTID_PREFIX"},
				Usage:   "address prefix, without the dash",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"BURSTID_LOG_LEVEL"},
				Usage:   "log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print one JSON object per line",
			},
		},
		Before: c.setup,
		Commands: []*cli.Command{
			{
				Name:      "address",
				Usage:     "Print the address of each numeric ID",
				ArgsUsage: "ID...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "address, decimal or base58",
					},
				},
				Action: c.address,
			},
			{
				Name:      "id",
				Usage:     "Print the numeric ID of each address",
				ArgsUsage: "ADDRESS...",
				Action:    c.id,
			},
			{
				Name:      "check",
				Usage:     "Report whether each address passes its checksum",
				ArgsUsage: "ADDRESS...",
				Action:    c.check,
			},
			{
				Name:  "account",
				Usage: "Derive the account of a passphrase read from the terminal or stdin",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:  "passphrase-file",
						Usage: "read the passphrase from a file instead",
					},
				},
				Action: c.account,
			},
		},
	}
}

func (c *command) setup(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"), ctx.IsSet("config"))
	if err != nil {
		return err
	}
	if ctx.IsSet("prefix") {
		cfg.Prefix = ctx.String("prefix")
	}
	if ctx.IsSet("log-level") {
		cfg.LogLevel = ctx.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	c.log.SetLevel(level)
	c.cfg = cfg
	c.json = ctx.Bool("json")

	burstid.Prefix = cfg.Prefix
	c.log.WithFields(logrus.Fields{
		"prefix": cfg.Prefix,
		"format": cfg.Format,
	}).Debug("configured")
	return nil
}

func (c *command) address(ctx *cli.Context) error {
	format := c.cfg.Format
	if ctx.IsSet("format") {
		format = ctx.String("format")
	}
	f, err := burstid.ParseFormat(format)
	if err != nil {
		return err
	}

	for _, arg := range ctx.Args().Slice() {
		// Negative IDs come from signed database columns.
		id, err := burstid.ParseDecimal(arg)
		if err != nil {
			return cli.Exit(errors.Wrapf(err, "invalid ID %q", arg).Error(), 1)
		}
		c.log.WithField("id", id.Uint64()).Debug("encoding")
		if c.json {
			c.emit(ctx.App.Writer, accountOutput(burstid.NewAccount(id)))
			continue
		}
		fmt.Fprintln(ctx.App.Writer, id.Format(f))
	}
	return nil
}

func (c *command) id(ctx *cli.Context) error {
	for _, arg := range ctx.Args().Slice() {
		id, err := burstid.ToID(burstid.Address(arg))
		if err != nil {
			c.log.WithError(err).WithField("address", arg).Debug("decode failed")
			return cli.Exit(fmt.Sprintf("%q: %v", arg, err), exitCode(err))
		}
		if c.json {
			c.emit(ctx.App.Writer, accountOutput(burstid.NewAccount(id)))
			continue
		}
		fmt.Fprintln(ctx.App.Writer, id.Format(burstid.FormatDecimal))
	}
	return nil
}

func (c *command) check(ctx *cli.Context) error {
	failed := 0
	for _, arg := range ctx.Args().Slice() {
		id, err := burstid.ToID(burstid.Address(arg))
		switch {
		case c.json && err != nil:
			c.emit(ctx.App.Writer, output{Input: arg, Error: reason(err)})
		case c.json:
			c.emit(ctx.App.Writer, accountOutput(burstid.Account{ID: id, Address: burstid.Address(arg)}))
		case err != nil:
			fmt.Fprintf(ctx.App.Writer, "%s\tinvalid: %s\n", arg, reason(err))
		default:
			fmt.Fprintf(ctx.App.Writer, "%s\tvalid\n", arg)
		}
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit("", exitInvalid)
	}
	return nil
}

func (c *command) account(ctx *cli.Context) error {
	buf, err := c.readPassphrase(ctx)
	if err != nil {
		return err
	}
	return credential.WithPassphrase(buf, func(p *credential.Passphrase) error {
		if len(p.Bytes()) == 0 {
			return errors.New("empty passphrase")
		}
		pub, err := p.PublicKey()
		if err != nil {
			return errors.Wrap(err, "derive public key")
		}
		id := burstid.FromPublicKey(pub)
		c.log.WithField("account", id.Uint64()).Debug("derived account")

		out := accountOutput(burstid.NewAccount(id))
		out.PublicKey = hex.EncodeToString(pub)
		if c.json {
			c.emit(ctx.App.Writer, out)
			return nil
		}
		fmt.Fprintf(ctx.App.Writer, "account\t%s\naddress\t%s\npublic key\t%s\n",
			out.ID.Format(burstid.FormatDecimal), out.Address, out.PublicKey)
		return nil
	})
}

// readPassphrase returns a buffer owned by the caller, with any trailing
// line ending dropped.
func (c *command) readPassphrase(ctx *cli.Context) ([]byte, error) {
	if path := ctx.Path("passphrase-file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open passphrase file")
		}
		defer f.Close()
		buf, err := credential.Read(f)
		return buf, errors.Wrapf(err, "read passphrase file %s", path)
	}
	if f, ok := ctx.App.Reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(ctx.App.ErrWriter, "Passphrase: ")
		buf, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(ctx.App.ErrWriter)
		if err != nil {
			clear(buf)
			return nil, errors.Wrap(err, "read passphrase")
		}
		return buf, nil
	}
	buf, err := credential.Read(ctx.App.Reader)
	return buf, errors.Wrap(err, "read passphrase from stdin")
}

func accountOutput(a burstid.Account) output {
	return output{Account: &a}
}

func (c *command) emit(w io.Writer, v output) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.log.WithError(err).Error("write output")
	}
}

func exitCode(err error) int {
	if errors.Is(err, burstid.ErrCodewordTooLong) {
		return exitMalformed
	}
	return exitInvalid
}

func reason(err error) string {
	switch {
	case errors.Is(err, burstid.ErrCodewordTooLong):
		return "too many symbols"
	case errors.Is(err, burstid.ErrOverflow):
		return "out of range"
	default:
		return "checksum mismatch"
	}
}
