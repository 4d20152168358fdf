package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tada/mqtt-pub/config"
	"github.com/tada/mqtt-pub/testutils"
)

func publish(stdin string, args ...string) (int, string, string) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	code := Publish(append([]string{"mqtt-pub"}, args...), strings.NewReader(stdin), out, errOut)
	return code, out.String(), errOut.String()
}

func TestPublish_help(t *testing.T) {
	code, out, _ := publish("", "-h")
	testutils.CheckEqual(0, code, t)
	testutils.CheckTrue(strings.Contains(out, "-natssubject"), t)
	testutils.CheckTrue(strings.Contains(out, "-writeconfig"), t)
}

func TestPublish_badFlag(t *testing.T) {
	code, _, errOut := publish("", "-nosuchflag")
	testutils.CheckEqual(2, code, t)
	testutils.CheckTrue(strings.Contains(errOut, "nosuchflag"), t)
}

func TestPublish_invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"port", []string{"-port", "0"}, "port 0 is out of range"},
		{"transport", []string{"-transport", "udp"}, `unknown transport "udp"`},
		{"topic", []string{"-topic", "a/+"}, "wildcards"},
		{"clientid", []string{"-clientid", strings.Repeat("x", 256)}, "client identifier"},
		{"loglevel", []string{"-loglevel", "verbose"}, `unknown log level "verbose"`},
		{"nats", []string{"-natsurl", "nats://localhost:4222"}, "must be given together"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := publish("", tt.args...)
			testutils.CheckEqual(2, code, t)
			testutils.CheckTrue(strings.Contains(errOut, tt.msg), t)
		})
	}
}

func TestPublish_writeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pub.json")
	code, _, errOut := publish("", "-host", "broker.local", "-topic", "a/b", "-D", "-writeconfig", path)
	testutils.CheckEqual("", errOut, t)
	testutils.CheckEqual(0, code, t)

	cfg := config.Default()
	testutils.CheckNotError(config.Load(path, cfg), t)
	testutils.CheckEqual("broker.local", cfg.Host, t)
	testutils.CheckEqual("a/b", cfg.Topic, t)
	testutils.CheckEqual("debug", cfg.LogLevel, t)
	testutils.CheckEqual(1883, cfg.Port, t)
}

func TestPublish_configFileOverride(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	cfg := config.Default()
	cfg.Host = "from.file"
	cfg.Port = 8883
	cfg.Topic = "file/topic"
	testutils.CheckNotError(config.Save(in, cfg), t)

	out := filepath.Join(dir, "out.json")
	code, _, errOut := publish("", "-config", in, "-port", "1884", "-writeconfig", out)
	testutils.CheckEqual("", errOut, t)
	testutils.CheckEqual(0, code, t)

	cfg = config.Default()
	testutils.CheckNotError(config.Load(out, cfg), t)
	testutils.CheckEqual("from.file", cfg.Host, t)
	testutils.CheckEqual(1884, cfg.Port, t)
	testutils.CheckEqual("file/topic", cfg.Topic, t)
}

func TestPublish_missingConfigFile(t *testing.T) {
	code, _, errOut := publish("", "-config", filepath.Join(t.TempDir(), "none.json"))
	testutils.CheckEqual(2, code, t)
	testutils.CheckTrue(strings.Contains(errOut, "none.json"), t)
}
