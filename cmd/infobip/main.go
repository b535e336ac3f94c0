package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/starius/infobip"
	"github.com/starius/infobip/debugclient"
	"github.com/starius/infobip/internal/config"
)

type CLI struct {
	EnvFile   []string      `help:"Files with INFOBIP_* variables (default .env)." name:"env-file"`
	Debug     bool          `help:"Log requests as curl commands to stderr."`
	Mock      bool          `help:"Answer with canned responses, no network."`
	MockDelay time.Duration `help:"Delay of canned responses." name:"mock-delay" default:"750ms"`
	Timeout   time.Duration `help:"Timeout of a call." default:"30s"`

	SMS      SMSCmd      `cmd:"" name:"sms" help:"Send a text message."`
	Voice    VoiceCmd    `cmd:"" help:"Send a text-to-speech message."`
	Numbers  NumbersCmd  `cmd:"" help:"List numbers available for purchase."`
	Number   NumberCmd   `cmd:"" help:"Show a purchased number."`
	Purchase PurchaseCmd `cmd:"" help:"Purchase a number."`
	Reports  ReportsCmd  `cmd:"" help:"Fetch SMS delivery reports."`
	OpenAPI  OpenAPICmd  `cmd:"" name:"openapi" help:"Print OpenAPI description of supported methods."`
	Routes   RoutesCmd   `cmd:"" help:"Print methods and paths as YAML."`
}

// env is passed to Run methods of commands.
type env struct {
	cli    *CLI
	stdout io.Writer
}

func (e *env) client() (*infobip.Client, error) {
	cfg, err := config.Load(e.cli.EnvFile...)
	if err != nil {
		return nil, err
	}
	opts := []infobip.Option{infobip.MockDelay(e.cli.MockDelay)}
	if e.cli.Debug {
		debug, err := debugclient.New(&http.Client{}, os.Stderr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, infobip.CustomClient(debug))
	}
	if e.cli.Mock && cfg.APIKey == "" && cfg.AuthType != infobip.AuthBasic {
		cfg.APIKey = "mock"
	}
	client, err := infobip.NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if e.cli.Mock {
		client.EngageMock()
	}
	return client, nil
}

type call func(ctx context.Context, client *infobip.Client) (*infobip.Response, error)

func (e *env) run(f call) error {
	client, err := e.client()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), e.cli.Timeout)
	defer cancel()

	res, err := f(ctx, client)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "%d %s\n%s\n", res.StatusCode, res.Status, res.Body)
	return err
}

type SMSCmd struct {
	From string   `help:"Sender."`
	To   []string `help:"Recipient, may be repeated." required:""`
	Text string   `help:"Message text." required:""`
}

func (c *SMSCmd) Run(e *env) error {
	params := infobip.Values{"text": c.Text}
	if c.From != "" {
		params["from"] = c.From
	}
	if len(c.To) == 1 {
		params["to"] = c.To[0]
	} else {
		params["to"] = c.To
	}
	return e.run(func(ctx context.Context, client *infobip.Client) (*infobip.Response, error) {
		return client.SendSMS(ctx, params)
	})
}

type VoiceCmd struct {
	From        string `help:"Caller ID."`
	To          string `help:"Recipient." required:""`
	Text        string `help:"Text to speak." required:""`
	Language    string `help:"Language code." default:"en"`
	VoiceName   string `help:"Voice name." name:"voice-name" required:""`
	VoiceGender string `help:"Voice gender." name:"voice-gender" enum:"male,female" default:"female"`
}

func (c *VoiceCmd) Run(e *env) error {
	params := infobip.Values{
		"to":       c.To,
		"text":     c.Text,
		"language": c.Language,
		"voice": map[string]interface{}{
			"name":   c.VoiceName,
			"gender": c.VoiceGender,
		},
	}
	if c.From != "" {
		params["from"] = c.From
	}
	return e.run(func(ctx context.Context, client *infobip.Client) (*infobip.Response, error) {
		return client.SendVoice(ctx, params)
	})
}

type NumbersCmd struct {
	Limit   int    `help:"Max numbers to list." default:"10"`
	Country string `help:"Country code." default:"NG"`
	Number  string `help:"Pattern of the number."`
}

func (c *NumbersCmd) Run(e *env) error {
	params := infobip.Values{"limit": c.Limit, "country": c.Country}
	if c.Number != "" {
		params["number"] = c.Number
	}
	return e.run(func(ctx context.Context, client *infobip.Client) (*infobip.Response, error) {
		return client.Numbers(ctx, params)
	})
}

type NumberCmd struct {
	Key string `arg:"" help:"Number key."`
}

func (c *NumberCmd) Run(e *env) error {
	return e.run(func(ctx context.Context, client *infobip.Client) (*infobip.Response, error) {
		return client.GetNumber(ctx, infobip.Values{"numberKey": c.Key})
	})
}

type PurchaseCmd struct {
	Key string `arg:"" help:"Number key."`
}

func (c *PurchaseCmd) Run(e *env) error {
	return e.run(func(ctx context.Context, client *infobip.Client) (*infobip.Response, error) {
		return client.PurchaseNumber(ctx, infobip.Values{"numberKey": c.Key})
	})
}

type ReportsCmd struct {
	BulkID    string `help:"Bulk ID." name:"bulk-id"`
	MessageID string `help:"Message ID." name:"message-id"`
	Limit     int    `help:"Max reports to fetch."`
}

func (c *ReportsCmd) Run(e *env) error {
	params := infobip.Values{}
	if c.BulkID != "" {
		params["bulkId"] = c.BulkID
	}
	if c.MessageID != "" {
		params["messageId"] = c.MessageID
	}
	if c.Limit > 0 {
		params["limit"] = c.Limit
	}
	return e.run(func(ctx context.Context, client *infobip.Client) (*infobip.Response, error) {
		return client.GetSMSDeliveryReports(ctx, params)
	})
}

type OpenAPICmd struct {
	YAML bool `help:"Print YAML instead of JSON." name:"yaml"`
}

func (c *OpenAPICmd) Run(e *env) error {
	cfg, err := config.Load(e.cli.EnvFile...)
	if err != nil {
		return err
	}
	return writeOpenAPI(e.stdout, infobip.OpenAPI(cfg.BaseURL(), infobip.Descriptors()), c.YAML)
}

type RoutesCmd struct{}

func (c *RoutesCmd) Run(e *env) error {
	return infobip.WriteRoutes(e.stdout, infobip.Descriptors())
}

func writeOpenAPI(w io.Writer, doc interface{}, asYAML bool) error {
	content, err := json.MarshalIndent(doc, "", " ")
	if err != nil {
		return err
	}
	if asYAML {
		// Go through a generic value: the document has only JSON tags.
		var generic interface{}
		if err := json.Unmarshal(content, &generic); err != nil {
			return err
		}
		content, err = yaml.Marshal(generic)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%s\n", content)
	return err
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("infobip"),
		kong.Description("Command line client of Infobip SMS and voice API."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&env{cli: cli, stdout: os.Stdout})
	ctx.FatalIfErrorf(err)
}
