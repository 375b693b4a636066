package xmain

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/tailor/lib/go2"
)

// Opts registers flags that may also be set through environment variables.
// Flags always take precedence over the environment.
type Opts struct {
	Args  []string
	Flags *pflag.FlagSet
	env   *xos.Env
	log   *cmdlog.Logger

	envFlags []envFlag
	enums    []enumFlag
}

// envFlag is an environment variable backing a flag.
type envFlag struct {
	key  string
	flag string
}

type enumFlag struct {
	flag    string
	val     *string
	choices []string
}

func NewOpts(env *xos.Env, log *cmdlog.Logger, args []string) *Opts {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	return &Opts{
		Args:  args,
		Flags: flags,
		env:   env,
		log:   log,
	}
}

// Help lists the flags followed by the environment variables that back them.
func (o *Opts) Help() string {
	b := &strings.Builder{}
	o.Flags.SetOutput(b)
	o.Flags.PrintDefaults()
	o.Flags.SetOutput(io.Discard)

	if len(o.envFlags) == 0 {
		return b.String()
	}
	b.WriteString("\nYou may persistently set the following as environment variables (flags take precedent):\n")
	lines := make([]string, 0, len(o.envFlags))
	for _, ef := range o.envFlags {
		lines = append(lines, fmt.Sprintf("- $%s (--%s)", ef.key, ef.flag))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// Parse parses o.Args and checks enum flags against their choices. The positional
// arguments left over are available through o.Flags.Args().
func (o *Opts) Parse() error {
	err := o.Flags.Parse(o.Args)
	if err != nil {
		return err
	}
	for _, e := range o.enums {
		*e.val = strings.ToLower(*e.val)
		if !go2.Contains(e.choices, *e.val) {
			return fmt.Errorf("invalid value %q for --%s, expected one of %s", *e.val, e.flag, strings.Join(e.choices, ", "))
		}
	}
	return nil
}

func (o *Opts) getEnv(k, flag string) string {
	if k == "" {
		return ""
	}
	o.envFlags = append(o.envFlags, envFlag{key: k, flag: flag})
	return o.env.Getenv(k)
}

func (o *Opts) String(envKey, flag, shortFlag string, defaultVal, usage string) *string {
	if env := o.getEnv(envKey, flag); env != "" {
		defaultVal = env
	}
	return o.Flags.StringP(flag, shortFlag, defaultVal, usage)
}

// Enum is a string flag restricted to choices, compared case-insensitively.
// choices must be lowercase.
func (o *Opts) Enum(envKey, flag, shortFlag string, defaultVal string, choices []string, usage string) (*string, error) {
	if env := o.getEnv(envKey, flag); env != "" {
		if !go2.Contains(choices, strings.ToLower(env)) {
			return nil, fmt.Errorf(`invalid environment variable %s. Expected one of %s. Found "%s".`, envKey, strings.Join(choices, ", "), env)
		}
		defaultVal = env
	}
	usage = fmt.Sprintf("%s (%s)", usage, strings.Join(choices, ", "))
	val := o.Flags.StringP(flag, shortFlag, defaultVal, usage)
	o.enums = append(o.enums, enumFlag{flag: flag, val: val, choices: choices})
	return val, nil
}

func (o *Opts) Bool(envKey, flag, shortFlag string, defaultVal bool, usage string) (*bool, error) {
	if env := o.getEnv(envKey, flag); env != "" {
		switch env {
		case "1", "true":
			defaultVal = true
		case "0", "false":
			defaultVal = false
		default:
			return nil, fmt.Errorf(`invalid environment variable %s. Expected bool. Found "%s".`, envKey, env)
		}
	}
	return o.Flags.BoolP(flag, shortFlag, defaultVal, usage), nil
}
