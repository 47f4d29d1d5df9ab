// Copyright (c) 2026 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/palantir/witchcraft-go-logging/wlog"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
)

type CLI struct {
	Verbose bool `help:"Log debug output to stderr." short:"v"`

	Lint    LintCmd    `cmd:"" help:"Validate every route of a manifest."`
	Prepare PrepareCmd `cmd:"" help:"Render the URL of one manifest route."`
	Import  ImportCmd  `cmd:"" help:"Print the manifest equivalent of an OpenAPI 3 document."`
}

// env is bound into every command's Run method.
type env struct {
	ctx context.Context
	out io.Writer
}

func newEnv(cli *CLI, stdout, stderr io.Writer) *env {
	level := wlog.WarnLevel
	if cli.Verbose {
		level = wlog.DebugLevel
	}
	wlog.SetDefaultLoggerProvider(wlog.NewJSONMarshalLoggerProvider())
	return &env{
		ctx: svc1log.WithLogger(context.Background(), svc1log.New(stderr, level)),
		out: stdout,
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("endpointcheck"),
		kong.Description("Check endpoint contract manifests and render request URLs."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(newEnv(cli, stdout, stderr))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("endpointcheck"),
		kong.Description("Check endpoint contract manifests and render request URLs."),
		kong.UsageOnError(),
	)
	err := ctx.Run(newEnv(cli, os.Stdout, os.Stderr))
	ctx.FatalIfErrorf(err)
}
