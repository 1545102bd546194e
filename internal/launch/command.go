package launch

import (
	"fmt"
	"strconv"
	"strings"

	"ewbf/internal/device"
)

// Pool is the stratum endpoint the worker connects to
type Pool struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	APIPort  int    `yaml:"api_port"`
}

// PoolArguments renders the connection flags that precede the option arguments.
// Empty fields are omitted; the password defaults to "x".
func PoolArguments(p Pool) Arguments {
	args := make(Arguments, 0, 10)
	if p.Host != "" {
		args = append(args, "--server", p.Host)
	}
	if p.Port > 0 {
		args = append(args, "--port", strconv.Itoa(p.Port))
	}
	if p.User != "" {
		password := p.Password
		if password == "" {
			password = "x"
		}
		args = append(args, "--user", p.User, "--pass", password)
	}
	if p.APIPort > 0 {
		args = append(args, "--api", fmt.Sprintf("127.0.0.1:%d", p.APIPort))
	}
	return args
}

// DeviceArguments selects the CUDA devices the worker mines on
// ("--cuda_devices 0 2"). An empty selection emits nothing.
func DeviceArguments(devices []device.Device) Arguments {
	if len(devices) == 0 {
		return Arguments{}
	}
	args := make(Arguments, 0, len(devices)+1)
	args = append(args, "--cuda_devices")
	for _, d := range devices {
		args = append(args, strconv.Itoa(d.ID))
	}
	return args
}

// Command is everything the process launcher needs to start the worker
type Command struct {
	Path string
	Dir  string
	Args Arguments
	Env  []string
}

// NewCommand assembles a command, copying args and env
func NewCommand(path, dir string, args Arguments, env []string) Command {
	return Command{
		Path: path,
		Dir:  dir,
		Args: append(Arguments(nil), args...),
		Env:  append([]string(nil), env...),
	}
}

// String renders the command line for display. Tokens holding whitespace,
// quotes or backslashes are quoted so ParseExtraLaunchParameters reads them back.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Path))
	for _, arg := range c.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'\\") {
		return strconv.Quote(s)
	}
	return s
}
