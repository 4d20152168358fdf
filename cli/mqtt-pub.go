// Package cli contains the command line entry of the MQTT publisher
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/tada/mqtt-pub/config"
	"github.com/tada/mqtt-pub/logger"
	"github.com/tada/mqtt-pub/publisher"
	"github.com/tada/mqtt-pub/source"
	"github.com/tada/mqtt-pub/transport"
)

type cliOptions struct {
	printHelp     bool
	debug         bool
	configFile    string
	writeConfig   string
	natsCredsFile string
}

func newFlagSet(name string, cfg *config.Config, o *cliOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "MQTT broker host")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "MQTT broker port")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, `transport used to reach the broker, "tcp" or "ws"`)
	fs.StringVar(&cfg.WSPath, "wspath", cfg.WSPath, "HTTP path of the broker's WebSocket endpoint")
	fs.StringVar(&cfg.ClientID, "clientid", cfg.ClientID, "MQTT client identifier. A unique identifier is generated when empty")
	fs.StringVar(&cfg.Topic, "topic", cfg.Topic, "topic that messages are published on")
	fs.IntVar(&cfg.KeepAlive, "keepalive", cfg.KeepAlive, "keep alive interval in seconds sent in CONNECT")
	fs.StringVar(&cfg.ExitCommand, "exit", cfg.ExitCommand, "input line that ends the session")
	fs.IntVar(&cfg.DialTimeout, "timeout", cfg.DialTimeout, "time in milliseconds to wait for the broker connection")

	// messages from NATS instead of the console
	fs.StringVar(&cfg.NATSURL, "natsurl", cfg.NATSURL, "NATS server URLs separated by comma")
	fs.StringVar(&cfg.NATSSubject, "natssubject", cfg.NATSSubject, "NATS subject to read messages from")
	fs.StringVar(&o.natsCredsFile, "nats-creds", "", "User Credentials File used when connecting to NATS")

	fs.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "one of silent, error, info or debug")
	fs.BoolVar(&o.debug, "D", false, "Enable Debug logging")
	fs.BoolVar(&o.debug, "debug", false, "Enable Debug logging")

	fs.StringVar(&o.configFile, "config", "", "path to a json file with configuration. Flags override its values")
	fs.StringVar(&o.writeConfig, "writeconfig", "", "write the effective configuration to the given json file and exit")
	fs.BoolVar(&o.printHelp, "h", false, "")
	fs.BoolVar(&o.printHelp, "help", false, "Print this help")
	return fs
}

// Publish runs the publisher with the given command line arguments. Messages are read from stdin
// unless a NATS subject is configured. The returned value is the process exit code.
func Publish(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.Default()
	o := &cliOptions{}
	fs := newFlagSet(args[0], cfg, o)
	fs.SetOutput(stderr)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if o.printHelp {
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	if o.configFile != "" {
		// values from the file first, then the explicit flags once more on top of them
		cfg = config.Default()
		if err := config.Load(o.configFile, cfg); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		fs = newFlagSet(args[0], cfg, &cliOptions{})
		fs.SetOutput(io.Discard)
		_ = fs.Parse(args[1:])
	}
	if o.debug {
		cfg.LogLevel = logger.Debug.String()
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if o.writeConfig != "" {
		if err = config.Save(o.writeConfig, cfg); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	cfg.EnsureClientID()
	lg := logger.New(level, stdout, stderr)
	return run(cfg, o, stdin, stdout, lg)
}

func run(cfg *config.Config, o *cliOptions, stdin io.Reader, stdout io.Writer, lg logger.Logger) int {
	var src source.Source
	if cfg.UsesNATS() {
		natsOpts := []nats.Option{nats.Name("MQTT Publisher")}
		if o.natsCredsFile != "" {
			natsOpts = append(natsOpts, nats.UserCredentials(o.natsCredsFile))
		}
		nc, err := nats.Connect(cfg.NATSURL, natsOpts...)
		if err != nil {
			lg.Error("NATS connect failed", err)
			return 1
		}
		defer nc.Close()

		ns, err := source.NewNATS(nc, cfg.NATSSubject, cfg.ExitCommand)
		if err != nil {
			lg.Error("NATS subscribe failed", err)
			return 1
		}
		defer func() {
			_ = ns.Close()
		}()
		lg.Info("Reading messages from NATS subject", cfg.NATSSubject)
		src = ns
	} else {
		_, _ = fmt.Fprintf(stdout, "Enter messages to send to the broker. Type '%s' to quit.\n", cfg.ExitCommand)
		src = source.NewConsole(stdin, stdout, cfg.ExitCommand)
	}

	conn, err := transport.Dial(cfg)
	if err != nil {
		lg.Error("Connect to", cfg.Address(), "failed:", err)
		return 1
	}
	lg.Debug("connected to", cfg.Address(), "using", cfg.Transport)

	c := publisher.New(conn, cfg, lg)
	defer func() {
		_ = c.Close()
	}()

	err = c.Run(src)
	lg.Info("Session ended:", c.Stats())
	if err != nil {
		lg.Error(err)
		return 1
	}
	return 0
}
