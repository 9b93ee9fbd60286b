package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the settings read.
const EnvPrefix = "MAZEWALK_"

// EnvConfig names the variable holding a default run-profile path.
const EnvConfig = EnvPrefix + "CONFIG"

// ErrEnv is returned by ApplyEnv for a variable that cannot be parsed.
var ErrEnv = errors.New("config: invalid environment variable")

// Environ returns the process environment merged over the given .env files.
// Missing files are skipped; the process environment wins over file values.
func Environ(files ...string) (map[string]string, error) {
	env := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: reading %s: %w", file, err)
		}
		for k, v := range values {
			if _, set := env[k]; !set {
				env[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides s with the MAZEWALK_* variables present in env.
func (s *Settings) ApplyEnv(env map[string]string) error {
	for _, v := range []struct {
		key   string
		apply func(string) error
	}{
		{"ANIMATE", boolSetter(&s.Animate)},
		{"DELAY", durationSetter(&s.Delay)},
		{"COLOR", boolSetter(&s.Color)},
		{"STRATEGY", stringSetter(&s.Strategy)},
		{"WORKERS", intSetter(&s.Workers)},
		{"MAX_STEPS", intSetter(&s.MaxSteps)},
		{"LOG_LEVEL", stringSetter(&s.LogLevel)},
		{"LOG_FORMAT", stringSetter(&s.LogFormat)},
		{"LANG", stringSetter(&s.Lang)},
		{"SHOW_PATH", boolSetter(&s.ShowPath)},
		{"BROADCAST_URL", stringSetter(&s.Broadcast.URL)},
		{"BROADCAST_NAMESPACE", stringSetter(&s.Broadcast.Namespace)},
		{"BROADCAST_EVENT", stringSetter(&s.Broadcast.Event)},
		{"BROADCAST_INSECURE", boolSetter(&s.Broadcast.InsecureSkipVerify)},
	} {
		raw, ok := env[EnvPrefix+v.key]
		if !ok {
			continue
		}
		if err := v.apply(strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("%w: %s%s=%q: %w", ErrEnv, EnvPrefix, v.key, raw, err)
		}
	}
	return nil
}

func stringSetter(dst *string) func(string) error {
	return func(raw string) error {
		*dst = raw
		return nil
	}
}

func boolSetter(dst *bool) func(string) error {
	return func(raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
}

func intSetter(dst *int) func(string) error {
	return func(raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func durationSetter(dst *time.Duration) func(string) error {
	return func(raw string) error {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}
}
