package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/pinata.go/pkg/host/client"
	"github.com/robotalks/pinata.go/pkg/host/env"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *env.Config
	Client *client.Client
	Target string
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
		&AESCmd,
		&AcqCmd,
		&WatchCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Client == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// Print prints v as JSON when requested, otherwise as text.
func (s *Shell) Print(c *ishell.Context, v interface{}, text string) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(text)
}

// CommandFailed reports err and drops the connection when the link is no
// longer in sync with the target.
func (s *Shell) CommandFailed(c *ishell.Context, err error) {
	c.Err(err)
	if s.Client != nil && s.Client.Err() != nil {
		c.Printf("disconnected from %s, reconnect to continue\n", s.Target)
		s.Disconnect()
	}
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Connect connects target, the configured one if empty.
func (s *Shell) Connect(target string) error {
	if target == "" {
		target = s.Config.Target
	}
	cli, err := s.Config.Dial(target)
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Client, s.Target = cli, target
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", target))
	return nil
}

// Disconnect disconnects current target.
func (s *Shell) Disconnect() {
	if s.Client != nil {
		s.Client.Close()
		s.Client, s.Target = nil, ""
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Target != "" {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Target)
		}
		if err := s.Connect(""); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.Target, err)
		}
	}
	defer s.Disconnect()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.Default()).WithAutoConnect(true).Run(flag.Args()...)
}
