package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/starius/infobip"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("INFOBIP_API_KEY", "")
	require.NoError(t, os.Unsetenv("INFOBIP_API_KEY"))
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("INFOBIP_API_KEY=secret\n"), 0o600))

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("infobip"), kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(append([]string{"--env-file", envFile, "--mock", "--mock-delay", "1ms"}, args...))
	if err != nil {
		return "", err
	}
	var stdout bytes.Buffer
	err = ctx.Run(&env{cli: cli, stdout: &stdout})
	return stdout.String(), err
}

func TestCommands(t *testing.T) {
	cases := []struct {
		args     []string
		wantEcho map[string]interface{}
	}{
		{
			args:     []string{"sms", "--to", "41793026727", "--text", "Hello"},
			wantEcho: map[string]interface{}{"to": "41793026727", "text": "Hello"},
		},
		{
			args:     []string{"sms", "--to", "1", "--to", "2", "--text", "Hi", "--from", "InfoSMS"},
			wantEcho: map[string]interface{}{"to": []interface{}{"1", "2"}, "text": "Hi", "from": "InfoSMS"},
		},
		{
			args:     []string{"numbers", "--limit", "5"},
			wantEcho: map[string]interface{}{"limit": float64(5), "country": "NG"},
		},
		{
			args:     []string{"number", "abc"},
			wantEcho: map[string]interface{}{"numberKey": "abc"},
		},
		{
			args:     []string{"purchase", "abc"},
			wantEcho: map[string]interface{}{"numberKey": "abc"},
		},
		{
			args:     []string{"reports", "--bulk-id", "b1"},
			wantEcho: map[string]interface{}{"bulkId": "b1"},
		},
		{
			args: []string{"voice", "--to", "1", "--text", "Hi", "--voice-name", "Joanna"},
			wantEcho: map[string]interface{}{
				"to":       "1",
				"text":     "Hi",
				"language": "en",
				"voice":    map[string]interface{}{"name": "Joanna", "gender": "female"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.args[0], func(t *testing.T) {
			out, err := run(t, tc.args...)
			require.NoError(t, err)
			status, body, found := strings.Cut(out, "\n")
			require.True(t, found)
			require.Equal(t, "200 OK", status)

			var res struct {
				Messages []struct {
					Status struct {
						Echo map[string]interface{} `json:"_"`
					} `json:"status"`
				} `json:"messages"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &res))
			require.Len(t, res.Messages, 1)
			require.Equal(t, tc.wantEcho, res.Messages[0].Status.Echo)
		})
	}
}

func TestCommandValidation(t *testing.T) {
	_, err := run(t, "sms", "--text", "Hello")
	require.Error(t, err)

	_, err = run(t, "voice", "--to", "1", "--text", "Hi", "--voice-name", "Joanna", "--voice-gender", "robot")
	require.Error(t, err)
}

func TestOpenAPICommand(t *testing.T) {
	out, err := run(t, "openapi")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "3.0.0", doc["openapi"])

	out, err = run(t, "openapi", "--yaml")
	require.NoError(t, err)
	var yamlDoc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &yamlDoc))
	paths := yamlDoc["paths"].(map[string]interface{})
	require.Contains(t, paths, "/sms/1/reports")
	require.Len(t, paths, len(infobip.Descriptors()))
}

func TestRoutesCommand(t *testing.T) {
	out, err := run(t, "routes")
	require.NoError(t, err)
	require.Contains(t, out, "SendSMSBinary:\n")
	require.Contains(t, out, "path: /sms/2/binary/advanced\n")
}
